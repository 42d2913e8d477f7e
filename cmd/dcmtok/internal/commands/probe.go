package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/ashgrove-health/dcmtok/cmd/dcmtok/internal/config"
	"github.com/ashgrove-health/dcmtok/decode"
	"github.com/ashgrove-health/dcmtok/stream"
)

// ProbeCmd walks one or more DICOM files with stream.LazyReader, printing
// each element's tag, VR, length, and byte offset without reading any
// value — the random-access counterpart to DumpCmd, demonstrating the
// marker-only reading mode rather than tree assembly.
type ProbeCmd struct {
	Paths     []string `arg:"" optional:"" type:"existingfile" help:"DICOM files to probe." group:"Input"`
	Dir       string   `name:"dir" type:"existingdir" help:"Directory containing DICOM files." group:"Input" xor:"Input"`
	Recursive bool     `name:"recursive" short:"R" help:"Recursively search directories."`
}

// Run executes the probe command.
func (c *ProbeCmd) Run(cfg *config.GlobalConfig) error {
	logger := log.Default()

	ts, err := resolveTransferSyntax(cfg.TransferSyntax)
	if err != nil {
		return err
	}

	files, err := collectInputFiles(c.Dir, c.Paths, c.Recursive)
	if err != nil {
		return fmt.Errorf("failed to collect input files: %w", err)
	}
	if len(files) == 0 {
		logger.Warn("no DICOM files found")
		return nil
	}

	for _, path := range files {
		if err := probeFile(path, ts, logger); err != nil {
			logger.Error("failed to probe file", "file", path, "error", err)
			continue
		}
	}
	return nil
}

func probeFile(path string, ts decode.TransferSyntax, logger *log.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := stream.NewLazyReader(f, ts)

	fmt.Printf("%s:\n", path)
	count := 0
	for {
		marker, err := reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Printf("  %s @%d\n", marker.Header, marker.Pos)
		count++
	}
	logger.Debug("probed file", "file", path, "markers", count)
	return nil
}
