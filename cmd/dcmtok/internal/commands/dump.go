package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/ashgrove-health/dcmtok/cmd/dcmtok/internal/config"
	"github.com/ashgrove-health/dcmtok/decode"
	"github.com/ashgrove-health/dcmtok/dcmio"
	"github.com/ashgrove-health/dcmtok/stream"
)

// DumpCmd walks one or more DICOM files with stream.Reader and prints every
// token emitted, the way the teacher's own DumpCmd walks a parsed dataset's
// elements — except this command never builds a dataset, since tree
// assembly is outside this library's scope.
type DumpCmd struct {
	Paths     []string `arg:"" optional:"" type:"existingfile" help:"DICOM files to dump." group:"Input"`
	Dir       string   `name:"dir" type:"existingdir" help:"Directory containing DICOM files." group:"Input" xor:"Input"`
	Recursive bool     `name:"recursive" short:"R" help:"Recursively search directories."`
}

// Run executes the dump command.
func (c *DumpCmd) Run(cfg *config.GlobalConfig) error {
	logger := log.Default()

	ts, err := resolveTransferSyntax(cfg.TransferSyntax)
	if err != nil {
		return err
	}

	files, err := c.collectFiles()
	if err != nil {
		return fmt.Errorf("failed to collect input files: %w", err)
	}
	if len(files) == 0 {
		logger.Warn("no DICOM files found")
		return nil
	}
	logger.Info("dumping files", "count", len(files))

	for _, path := range files {
		if err := dumpFile(path, ts, logger); err != nil {
			logger.Error("failed to dump file", "file", path, "error", err)
			continue
		}
	}
	return nil
}

func (c *DumpCmd) collectFiles() ([]string, error) {
	return collectInputFiles(c.Dir, c.Paths, c.Recursive)
}

func dumpFile(path string, ts decode.TransferSyntax, logger *log.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := dcmio.NewReader(f, ts.ByteOrder)
	reader := stream.Open(r, ts)

	fmt.Printf("%s:\n", path)
	count := 0
	for {
		tok, err := reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Printf("  %s\n", tok)
		count++
	}
	logger.Debug("dumped file", "file", path, "tokens", count)
	return nil
}
