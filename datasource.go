package etl

import (
	"context"
	"io"
)

// Source is a Stage which produces Rows from an external resource, ignoring its input.
// Failing to open the resource surfaces as an errors.SourceIOError, either when the
// Source is created or when its output is first pulled.
type Source interface {
	Stage
	IsSource() bool
}

// Sink consumes Rows one at a time. A failed Write aborts the Pipeline, and Close is called
// on every exit path.
type Sink interface {
	Name() string
	Write(ctx context.Context, row Row) error
	Close() error
}

// DataSourceParser turns a raw stream of data into Rows, according to a Schema.
// Rows are parsed lazily, as the returned RowIterator is pulled.
type DataSourceParser interface {
	Parse(r io.Reader, schema Schema) (RowIterator, error)
}

// RowEncoder writes Rows to a stream in a particular format.
type RowEncoder interface {
	Encode(row Row) error
	Flush() error
}

// RowEncoderFactory creates a RowEncoder for a particular stream
type RowEncoderFactory func(w io.Writer) RowEncoder
