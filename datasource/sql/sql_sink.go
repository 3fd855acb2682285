package sql

import (
	"context"
	stdsql "database/sql"
	"fmt"
	"strings"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
)

// SinkConf configures a SQL Sink
type SinkConf struct {
	DB          *stdsql.DB // An open database. Takes precedence over Driver and DSN, and is never closed by the Sink.
	Driver      string     // The database/sql driver name. Required with DSN when DB is nil, and selects the SQL dialect. Defaults to sqlite.
	DSN         string     // The data source name, used with Driver when DB is nil
	Table       string     // The table to insert into. Required.
	Schema      etl.Schema // The columns to insert. Defaults to the fields of the first Row written.
	CreateTable bool       // If true, the table is created (if it does not exist) from Schema before the first insert
}

// Sink inserts every Row it receives into a table
type Sink struct {
	name    string
	conf    *SinkConf
	conn    *connection
	db      *stdsql.DB
	ownsDB  bool
	stmt    *stdsql.Stmt
	columns []string
	args    []any
	closed  bool
}

// CreateSink is a factory for Sinks. Nothing is opened until the first Row is written.
func CreateSink(name string, conf *SinkConf) (*Sink, error) {
	if conf == nil || conf.Table == "" {
		return nil, errors.ConfigError{Component: name, Reason: "a table is required"}
	}
	if conf.CreateTable && conf.Schema == nil {
		return nil, errors.ConfigError{Component: name, Reason: "creating a table requires a schema"}
	}
	conn := &connection{component: name, db: conf.DB, driver: conf.Driver, dsn: conf.DSN}
	if err := conn.validate(); err != nil {
		return nil, err
	}
	return &Sink{name: name, conf: conf, conn: conn}, nil
}

// Name returns the name of this Sink
func (s *Sink) Name() string {
	return s.name
}

func (s *Sink) prepare(ctx context.Context, first etl.Row) error {
	db, owns, err := s.conn.open()
	if err != nil {
		return err
	}
	s.db, s.ownsDB = db, owns
	dialect := s.conn.dialect()
	if s.conf.Schema != nil {
		s.columns = s.conf.Schema.ColumnNames()
	} else {
		s.columns = first.FieldNames()
	}
	table := quoteIdentifier(dialect, s.conf.Table)
	quoted := lo.Map(s.columns, func(c string, _ int) string { return quoteIdentifier(dialect, c) })
	if s.conf.CreateTable {
		kinds := s.conf.Schema.ColumnKinds()
		defs := lo.Map(quoted, func(c string, i int) string { return c + " " + columnType(dialect, kinds[i]) })
		ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(defs, ", "))
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	placeholders := lo.Map(s.columns, func(_ string, i int) string { return placeholder(dialect, i+1) })
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
	stmt, err := db.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	s.stmt = stmt
	s.args = make([]any, len(s.columns))
	return nil
}

// Write inserts a Row. Every column must be present in the Row, though it may be null.
func (s *Sink) Write(ctx context.Context, r etl.Row) error {
	if s.closed {
		return errors.SinkIOError{Sink: s.name, Err: stdsql.ErrConnDone}
	}
	if s.stmt == nil {
		if err := s.prepare(ctx, r); err != nil {
			return err
		}
	}
	for i, col := range s.columns {
		v, err := r.Get(col)
		if err != nil {
			return err
		}
		s.args[i] = v.Interface()
	}
	_, err := s.stmt.ExecContext(ctx, s.args...)
	return err
}

// Close releases the prepared statement, and the database if this Sink opened it
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var multierr *multierror.Error
	if s.stmt != nil {
		if err := s.stmt.Close(); err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	if s.db != nil && s.ownsDB {
		if err := s.db.Close(); err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	return multierr.ErrorOrNil()
}
