// Package logging configures the CLI's charmbracelet/log logger, including
// optional rotation to a file via lumberjack.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ashgrove-health/dcmtok/cmd/dcmtok/internal/config"
)

// Setup builds the default logger for a dcmtok invocation, returning it
// alongside a per-run correlation ID logged as the "run_id" field on every
// line so concurrent batch runs sharing a log file can be told apart.
func Setup(cfg *config.GlobalConfig) (*log.Logger, string) {
	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})

	switch cfg.LogLevel {
	case "trace", "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	case "fatal":
		logger.SetLevel(log.FatalLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	if !cfg.Pretty {
		logger.SetFormatter(log.JSONFormatter)
	}

	runID := uuid.NewString()
	logger = logger.With("run_id", runID)
	log.SetDefault(logger)

	return logger, runID
}
