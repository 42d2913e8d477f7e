// Package cli wires the dcmtok command-line interface together: argument
// parsing, logging setup, and dispatch into the commands package.
package cli

import (
	"github.com/alecthomas/kong"

	"github.com/ashgrove-health/dcmtok/cmd/dcmtok/internal/build"
	"github.com/ashgrove-health/dcmtok/cmd/dcmtok/internal/commands"
	"github.com/ashgrove-health/dcmtok/cmd/dcmtok/internal/config"
	"github.com/ashgrove-health/dcmtok/cmd/dcmtok/internal/logging"
)

const (
	appName        = "dcmtok"
	appDescription = "Streaming DICOM token reader CLI"
)

// CLI represents the root command structure.
type CLI struct {
	config.GlobalConfig

	Dump  commands.DumpCmd  `cmd:"" name:"dump" help:"Print the token stream for one or more DICOM files."`
	Probe commands.ProbeCmd `cmd:"" name:"probe" help:"Print element markers for one or more DICOM files without reading values."`
}

// Run executes the dcmtok CLI with the provided build info.
func Run(version, commit, date string) error {
	build.SetBuildInfo(version, commit, date)

	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name(appName),
		kong.Description(appDescription),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version, "commit": commit, "date": date},
	)

	if err := cli.GlobalConfig.Validate(); err != nil {
		ctx.Fatalf("invalid configuration: %v", err)
	}

	logger, _ := logging.Setup(&cli.GlobalConfig)
	logger.Debug("dcmtok CLI starting", "version", version, "commit", commit, "build_date", date)

	if err := ctx.Run(&cli.GlobalConfig); err != nil {
		logger.Error("command failed", "error", err)
		return err
	}
	return nil
}
