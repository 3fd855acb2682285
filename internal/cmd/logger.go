package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/go-sif/etl/logging"
)

// initLogger installs the default logger. Logs go to stderr so that stdout stays free for output.
func initLogger(level string, w io.Writer) error {
	if w == nil {
		w = os.Stderr
	}
	logger, err := logging.CreateLogger(level, w)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}
