// Package memory provides Sources and Sinks backed by in-memory buffers
package memory

import (
	"bytes"
	"context"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
	"github.com/go-sif/etl/internal/iterator"
)

// DataSource produces Rows held in memory, either directly or as raw data which is parsed lazily
type DataSource struct {
	name   string
	rows   []etl.Row
	data   [][]byte
	parser etl.DataSourceParser
	schema etl.Schema
	open   int
}

// CreateSource is a factory for DataSources which yield copies of the given Rows
func CreateSource(name string, rows []etl.Row) *DataSource {
	return &DataSource{name: name, rows: rows}
}

// CreateRawSource is a factory for DataSources which parse each buffer in data, in order
func CreateRawSource(name string, data [][]byte, parser etl.DataSourceParser, schema etl.Schema) *DataSource {
	return &DataSource{name: name, data: data, parser: parser, schema: schema}
}

// Name returns the name of this DataSource
func (ms *DataSource) Name() string {
	return ms.name
}

// IsSource returns true, since DataSources ignore their input
func (ms *DataSource) IsSource() bool {
	return true
}

// OpenIterators returns the number of iterators produced by this DataSource which have not been closed
func (ms *DataSource) OpenIterators() int {
	return ms.open
}

// Execute returns an iterator over this DataSource's Rows. The input is ignored, and closed along with the result.
func (ms *DataSource) Execute(ctx context.Context, input etl.RowIterator) (etl.RowIterator, error) {
	if ms.rows == nil && ms.parser == nil && len(ms.data) > 0 {
		return nil, errors.ConfigError{Component: ms.name, Reason: "raw data requires a parser"}
	}
	ms.open++
	return &memoryIterator{source: ms, input: input}, nil
}

type memoryIterator struct {
	source  *DataSource
	input   etl.RowIterator
	next    int
	current etl.RowIterator // parser output for data[next-1]
	closer  iterator.Closer
}

func (it *memoryIterator) Next() (etl.Row, error) {
	if it.closer.IsClosed() {
		return nil, errors.NoMoreRowsError{}
	}
	ms := it.source
	if ms.parser == nil {
		if it.next >= len(ms.rows) {
			return nil, errors.NoMoreRowsError{}
		}
		r := ms.rows[it.next]
		it.next++
		return r.Clone(), nil
	}
	for {
		if it.current != nil {
			r, err := it.current.Next()
			if !errors.IsNoMoreRows(err) {
				return r, err
			}
			if err := it.current.Close(); err != nil {
				return nil, err
			}
			it.current = nil
		}
		if it.next >= len(ms.data) {
			return nil, errors.NoMoreRowsError{}
		}
		parsed, err := ms.parser.Parse(bytes.NewReader(ms.data[it.next]), ms.schema)
		it.next++
		if err != nil {
			return nil, errors.SourceIOError{Source: ms.name, Err: err}
		}
		it.current = parsed
	}
}

func (it *memoryIterator) Close() error {
	return it.closer.Close(func() error {
		it.source.open--
		return iterator.CloseAll(it.current, it.input)
	})
}
