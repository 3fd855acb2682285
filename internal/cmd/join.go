package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/datasource/file"
	"github.com/go-sif/etl/datasource/parser/dsv"
	"github.com/go-sif/etl/datasource/parser/jsonl"
	"github.com/go-sif/etl/datasource/sql"
	"github.com/go-sif/etl/internal/cmd/clicfg"
	"github.com/go-sif/etl/internal/cmd/flags"
	"github.com/go-sif/etl/operations/join"
	"github.com/go-sif/etl/operations/transform"
	"github.com/go-sif/etl/operations/util"
	"github.com/go-sif/etl/pipeline"
	"github.com/go-sif/etl/schema"
	"github.com/urfave/cli/v3"
)

// joinConfig holds the parsed flags of the join command
type joinConfig struct {
	Left         string   `flag:"left"`
	Right        string   `flag:"right"`
	On           []string `flag:"on"`
	Mode         string   `flag:"mode"`
	Columns      string   `flag:"columns"`
	HeaderLines  int      `flag:"header-lines"`
	MergeField   string   `flag:"merge-field"`
	ReverseField string   `flag:"reverse-field"`
	Format       string   `flag:"format"`
	Out          string   `flag:"out"`
	DBDriver     string   `flag:"db-driver"`
	DBDSN        string   `flag:"db-dsn"`
	DBTable      string   `flag:"db-table"`
}

func joinCmd() *cli.Command {
	return &cli.Command{
		Name:  "join",
		Usage: "Hash join two word lists on their ids, concatenate and reverse their words, and write the result",
		Flags: []cli.Flag{
			flags.Left(),
			flags.Right(),
			flags.On(),
			flags.Mode(),
			flags.Columns(),
			flags.HeaderLines(),
			flags.MergeField(),
			flags.ReverseField(),
			flags.Format(),
			flags.Out(),
			flags.DBDriver(),
			flags.DBDSN(),
			flags.DBTable(),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := joinConfig{}
			if err := clicfg.ParseFlags(c, &cfg); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runJoin(ctx, &cfg, c.Root().Writer, slog.Default())
		},
	}
}

// runJoin builds and executes the join pipeline: join, then reverse, then write
func runJoin(ctx context.Context, cfg *joinConfig, stdout io.Writer, logger *slog.Logger) error {
	conditions, err := parseConditions(cfg.On)
	if err != nil {
		return err
	}
	mode, err := join.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	wordSchema, err := parseColumns(cfg.Columns)
	if err != nil {
		return err
	}
	parser, encoder, err := formatFor(cfg)
	if err != nil {
		return err
	}

	joined, err := join.Create(&join.Conf{
		Name:       "join",
		Left:       file.CreateSource("left", cfg.Left, parser, wordSchema),
		Right:      file.CreateSource("right", cfg.Right, parser, wordSchema),
		Conditions: conditions,
		Mode:       mode,
		Merge:      join.ConcatField(cfg.MergeField, " "),
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	sink, err := createSink(cfg, wordSchema, encoder, stdout)
	if err != nil {
		return err
	}

	p, err := pipeline.Create(&pipeline.Conf{Name: "join", Logger: logger})
	if err != nil {
		return err
	}
	stages := []etl.Stage{joined}
	if cfg.ReverseField != "" {
		stages = append(stages, transform.WithField("reverse", cfg.ReverseField, reverseField(cfg.ReverseField)))
	}
	stages = append(stages, util.Write("write", sink))
	if err := p.Register(stages...); err != nil {
		return err
	}
	return p.Execute(ctx)
}

// parseConditions parses FIELD or LEFT=RIGHT join conditions
func parseConditions(values []string) ([]join.Condition, error) {
	conditions := make([]join.Condition, 0, len(values))
	for _, v := range values {
		left, right, found := strings.Cut(v, "=")
		left = strings.TrimSpace(left)
		right = strings.TrimSpace(right)
		if !found {
			right = left
		}
		if left == "" || right == "" {
			return nil, fmt.Errorf("invalid join condition %q", v)
		}
		conditions = append(conditions, join.On(left, right))
	}
	return conditions, nil
}

// parseColumns parses a comma separated list of NAME:KIND into a Schema
func parseColumns(columns string) (etl.Schema, error) {
	s := schema.CreateSchema()
	for _, col := range strings.Split(columns, ",") {
		name, kindName, found := strings.Cut(strings.TrimSpace(col), ":")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid column %q, expected NAME:KIND", col)
		}
		kind, err := etl.ParseKind(kindName)
		if err != nil {
			return nil, err
		}
		if _, err := s.CreateColumn(name, kind); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// formatFor returns the input parser and output encoder for the configured format
func formatFor(cfg *joinConfig) (etl.DataSourceParser, etl.RowEncoderFactory, error) {
	switch cfg.Format {
	case "csv", "tsv":
		delimiter := ','
		if cfg.Format == "tsv" {
			delimiter = '\t'
		}
		parser := dsv.CreateParser(&dsv.ParserConf{HeaderLines: cfg.HeaderLines, Delimiter: delimiter})
		return parser, dsv.CreateEncoder(&dsv.EncoderConf{Delimiter: delimiter}), nil
	case "jsonl":
		return jsonl.CreateParser(&jsonl.ParserConf{}), jsonl.CreateEncoder(), nil
	default:
		return nil, nil, fmt.Errorf("unsupported format %s", cfg.Format)
	}
}

// createSink writes to a table when one is configured, otherwise to the output file or stdout
func createSink(cfg *joinConfig, wordSchema etl.Schema, encoder etl.RowEncoderFactory, stdout io.Writer) (etl.Sink, error) {
	switch {
	case cfg.DBTable != "":
		if !slices.Contains([]string{sql.SQLite, sql.Postgres, sql.MySQL}, cfg.DBDriver) {
			return nil, fmt.Errorf("unsupported database driver %s", cfg.DBDriver)
		}
		sink, err := sql.CreateSink("table", &sql.SinkConf{
			Driver:      cfg.DBDriver,
			DSN:         cfg.DBDSN,
			Table:       cfg.DBTable,
			Schema:      wordSchema,
			CreateTable: true,
		})
		if err != nil {
			return nil, err
		}
		return sink, nil
	case cfg.Out == "" || cfg.Out == "-":
		if stdout == nil {
			stdout = os.Stdout
		}
		return file.CreateWriterSink("stdout", stdout, encoder), nil
	default:
		return file.CreateSink("out", cfg.Out, encoder), nil
	}
}

// reverseField reverses the characters of a string field. Null values are left alone.
func reverseField(field string) transform.FieldOperation {
	return func(r etl.Row) (etl.Value, error) {
		v, err := r.Get(field)
		if err != nil {
			return etl.Null(), err
		}
		if v.IsNull() {
			return v, nil
		}
		s, err := v.AsString()
		if err != nil {
			return etl.Null(), fmt.Errorf("cannot reverse %s: %w", field, err)
		}
		runes := []rune(s)
		slices.Reverse(runes)
		return etl.String(string(runes)), nil
	}
}
