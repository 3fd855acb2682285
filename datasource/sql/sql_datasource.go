package sql

import (
	"context"
	stdsql "database/sql"
	"math"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/datasource/parser"
	"github.com/go-sif/etl/errors"
	"github.com/go-sif/etl/internal/iterator"
	"github.com/go-sif/etl/row"
	"github.com/hashicorp/go-multierror"
)

// SourceConf configures a SQL DataSource
type SourceConf struct {
	DB     *stdsql.DB // An open database. Takes precedence over Driver and DSN, and is never closed by the DataSource.
	Driver string     // The database/sql driver name, used with DSN when DB is nil
	DSN    string     // The data source name, used with Driver when DB is nil
	Query  string     // The query producing Rows. Required.
	Args   []any      // Arguments for the query's placeholders
	Schema etl.Schema // Optionally converts result columns to particular Kinds. Other columns are converted from their driver types.
}

// DataSource produces a Row for every row returned by a query
type DataSource struct {
	name string
	conf *SourceConf
	conn *connection
}

// CreateSource is a factory for DataSources. The query runs when the first Row is pulled.
func CreateSource(name string, conf *SourceConf) (*DataSource, error) {
	if conf == nil || conf.Query == "" {
		return nil, errors.ConfigError{Component: name, Reason: "a query is required"}
	}
	conn := &connection{component: name, db: conf.DB, driver: conf.Driver, dsn: conf.DSN}
	if err := conn.validate(); err != nil {
		return nil, err
	}
	return &DataSource{name: name, conf: conf, conn: conn}, nil
}

// Name returns the name of this DataSource
func (s *DataSource) Name() string {
	return s.name
}

// IsSource returns true, since DataSources ignore their input
func (s *DataSource) IsSource() bool {
	return true
}

// Execute returns an iterator over the query's results
func (s *DataSource) Execute(ctx context.Context, input etl.RowIterator) (etl.RowIterator, error) {
	return &queryIterator{ctx: ctx, source: s, input: input}, nil
}

type queryIterator struct {
	ctx      context.Context
	source   *DataSource
	input    etl.RowIterator
	db       *stdsql.DB
	ownsDB   bool
	rows     *stdsql.Rows
	columns  []string
	kinds    []etl.Kind
	scratch  []any
	ptrs     []any
	rowIndex int64
	done     bool
	closer   iterator.Closer
}

func (q *queryIterator) ioError(err error) error {
	return errors.SourceIOError{Source: q.source.name, Err: err}
}

// start runs the query
func (q *queryIterator) start() error {
	db, owns, err := q.source.conn.open()
	if err != nil {
		return err
	}
	q.db, q.ownsDB = db, owns
	rows, err := db.QueryContext(q.ctx, q.source.conf.Query, q.source.conf.Args...)
	if err != nil {
		return err
	}
	q.rows = rows
	columns, err := rows.Columns()
	if err != nil {
		return err
	}
	q.columns = columns
	q.kinds = make([]etl.Kind, len(columns))
	for i, col := range columns {
		if schema := q.source.conf.Schema; schema != nil && schema.HasColumn(col) {
			q.kinds[i], _ = schema.GetKind(col)
		}
	}
	q.scratch = make([]any, len(columns))
	q.ptrs = make([]any, len(columns))
	for i := range q.scratch {
		q.ptrs[i] = &q.scratch[i]
	}
	return nil
}

// Next scans the next result row into a Row
func (q *queryIterator) Next() (etl.Row, error) {
	if q.done || q.closer.IsClosed() {
		return nil, errors.NoMoreRowsError{}
	}
	if q.rows == nil {
		if err := q.start(); err != nil {
			q.done = true
			return nil, q.ioError(err)
		}
	}
	if !q.rows.Next() {
		q.done = true
		if err := q.rows.Err(); err != nil {
			return nil, q.ioError(err)
		}
		if err := q.release(); err != nil {
			return nil, q.ioError(err)
		}
		return nil, errors.NoMoreRowsError{}
	}
	if err := q.rows.Scan(q.ptrs...); err != nil {
		return nil, q.ioError(err)
	}
	idx := q.rowIndex
	q.rowIndex++
	r := row.CreateEmptyRow()
	for i, col := range q.columns {
		v, err := convert(col, q.kinds[i], q.scratch[i])
		if err != nil {
			return nil, errors.RowError{RowIndex: idx, Err: err}
		}
		r.Set(col, v)
	}
	return r, nil
}

// release closes the result set, and the database if this iterator opened it
func (q *queryIterator) release() error {
	var multierr *multierror.Error
	if q.rows != nil {
		if err := q.rows.Close(); err != nil {
			multierr = multierror.Append(multierr, err)
		}
		q.rows = nil
	}
	if q.db != nil && q.ownsDB {
		if err := q.db.Close(); err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	q.db = nil
	return multierr.ErrorOrNil()
}

// Close releases the result set and closes the input
func (q *queryIterator) Close() error {
	return q.closer.Close(func() error {
		q.done = true
		var err error
		if rerr := q.release(); rerr != nil {
			err = q.ioError(rerr)
		}
		if cerr := iterator.CloseAll(q.input); cerr != nil && err == nil {
			err = cerr
		}
		return err
	})
}

// convert turns a scanned driver value into a Value, honouring a requested Kind
func convert(field string, kind etl.Kind, raw any) (etl.Value, error) {
	if raw == nil {
		return etl.Null(), nil
	}
	if kind == etl.NullKind {
		if b, ok := raw.([]byte); ok {
			// text columns often arrive as bytes
			return etl.String(string(b)), nil
		}
		return etl.ValueOf(raw)
	}
	switch v := raw.(type) {
	case []byte:
		if kind == etl.BytesKind {
			return etl.Bytes(v), nil
		}
		return parser.ParseText(field, kind, string(v))
	case string:
		if kind == etl.BytesKind {
			return etl.Bytes([]byte(v)), nil
		}
		return parser.ParseText(field, kind, v)
	}
	val, err := etl.ValueOf(raw)
	if tm, ok := err.(errors.TypeMismatchError); ok {
		tm.Field = field
		return etl.Null(), tm
	} else if err != nil {
		return etl.Null(), err
	}
	switch {
	case val.Kind() == kind:
		return val, nil
	case kind == etl.FloatKind && val.Kind() == etl.IntKind:
		f, _ := val.AsFloat()
		return etl.Float(f), nil
	case kind == etl.IntKind && val.Kind() == etl.FloatKind:
		f, _ := val.AsFloat()
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			return etl.Int(int64(f)), nil
		}
	case kind == etl.BoolKind && val.Kind() == etl.IntKind:
		i, _ := val.AsInt()
		return etl.Bool(i != 0), nil
	case kind == etl.StringKind:
		return etl.String(val.Text()), nil
	}
	return etl.Null(), errors.TypeMismatchError{Field: field, Expected: kind.String(), Actual: val.Kind().String()}
}
