// Package flags holds the command line flags shared by etl commands
package flags

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-sif/etl/operations/join"
	"github.com/urfave/cli/v3"
)

var validLogLevels = []string{"trace", "debug", "info", "warn", "error"}

var validFormats = []string{"csv", "tsv", "jsonl"}

// LogLevel returns a flag setting the minimum level of the logs, which are written to stderr
func LogLevel() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "log-level",
		Aliases: []string{"l"},
		Usage:   "The level of the logs",
		Value:   "info",
		Validator: func(value string) error {
			if !slices.Contains(validLogLevels, strings.ToLower(value)) {
				return fmt.Errorf("invalid log level: %s, allowed values are: %s", value, validLogLevels)
			}
			return nil
		},
		Sources: cli.EnvVars("ETL_LOG_LEVEL"),
	}
}

// Left returns the flag for the file glob of the probe side of a join
func Left() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "left",
		Usage:    "A file or glob to read the left side of the join from",
		Required: true,
		Sources:  cli.EnvVars("ETL_LEFT"),
	}
}

// Right returns the flag for the file glob of the build side of a join, which is held in memory
func Right() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "right",
		Usage:    "A file or glob to read the right side of the join from. Must fit in memory.",
		Required: true,
		Sources:  cli.EnvVars("ETL_RIGHT"),
	}
}

// On returns a flag listing the join conditions, each either a field name shared by both sides or left=right
func On() *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:  "on",
		Usage: "A join condition, either FIELD or LEFT_FIELD=RIGHT_FIELD. May be repeated.",
		Value: []string{"Id"},
	}
}

// Mode returns a flag selecting an inner or left outer join
func Mode() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "mode",
		Usage: "The join mode, inner or left-outer",
		Value: "inner",
		Validator: func(value string) error {
			_, err := join.ParseMode(value)
			return err
		},
		Sources: cli.EnvVars("ETL_JOIN_MODE"),
	}
}

// Columns returns the flag for the schema of both inputs
func Columns() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "columns",
		Usage: "The columns of both inputs, as a comma separated list of NAME:KIND",
		Value: "Id:int,AWord:string",
	}
}

// HeaderLines returns the flag for the number of lines skipped at the top of each DSV input file
func HeaderLines() *cli.IntFlag {
	return &cli.IntFlag{
		Name:  "header-lines",
		Usage: "The number of header lines to skip in each csv or tsv input file",
		Value: 0,
	}
}

// MergeField returns the flag for the string field which is concatenated when two Rows are joined
func MergeField() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "merge-field",
		Usage: "The string field which is concatenated, separated by a space, when rows are joined",
		Value: "AWord",
	}
}

// ReverseField returns the flag for the string field which is reversed in every joined Row
func ReverseField() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "reverse-field",
		Usage: "A string field to reverse in every joined row. Empty to disable.",
		Value: "AWord",
	}
}

// Format returns the flag for the format of the inputs and of file output
func Format() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "The format of the inputs and the output: csv, tsv or jsonl",
		Value:   "csv",
		Validator: func(value string) error {
			if !slices.Contains(validFormats, value) {
				return fmt.Errorf("invalid format: %s, allowed values are: %s", value, validFormats)
			}
			return nil
		},
	}
}

// Out returns the flag for the output file. A .lz4 or .zst extension compresses the output.
func Out() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "The file to write the output to. Defaults to stdout. A .lz4 or .zst extension compresses the output.",
		Sources: cli.EnvVars("ETL_OUT"),
	}
}

// DBDriver returns a flag selecting the database/sql driver used to write the output to a table
func DBDriver() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db-driver",
		Usage:   "The database driver used with --db-table: sqlite, postgres or mysql",
		Value:   "sqlite",
		Sources: cli.EnvVars("ETL_DB_DRIVER"),
	}
}

// DBDSN returns the flag for the data source name used to write the output to a table
func DBDSN() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db-dsn",
		Usage:   "The data source name used with --db-table",
		Sources: cli.EnvVars("ETL_DB_DSN"),
	}
}

// DBTable returns the flag for a table which receives the output instead of a file
func DBTable() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db-table",
		Usage:   "A table to insert the output into, instead of writing it to a file. Created if it does not exist.",
		Sources: cli.EnvVars("ETL_DB_TABLE"),
	}
}
