// Package cmd implements the etl command line application
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/go-sif/etl/internal/cmd/flags"
	"github.com/urfave/cli/v3"
)

const VERSION = "0.1.0"

func createApp() *cli.Command {
	return &cli.Command{
		Name:    "etl",
		Usage:   "etl runs pull-based extract, transform and load pipelines",
		Version: VERSION,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := initLogger(c.String("log-level"), c.Root().ErrWriter); err != nil {
				return ctx, err
			}
			return ctx, nil
		},
		Flags: []cli.Flag{
			flags.LogLevel(),
		},
		Commands: []*cli.Command{
			joinCmd(),
		},
	}
}

// Run executes the etl application with the process arguments, exiting on failure
func Run() {
	if err := createApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
