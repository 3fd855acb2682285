// Package memorystream provides a Source which parses an unbounded stream of generated data
package memorystream

import (
	"bytes"
	"context"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
	"github.com/go-sif/etl/internal/iterator"
)

// Generator produces the next batch of raw data, or nil when the stream is over
type Generator func() []byte

// DataSource parses batches of data from a Generator as they are needed
type DataSource struct {
	name      string
	generator Generator
	parser    etl.DataSourceParser
	schema    etl.Schema
	batches   int
}

// CreateSource is a factory for DataSources
func CreateSource(name string, generator Generator, parser etl.DataSourceParser, schema etl.Schema) *DataSource {
	return &DataSource{name: name, generator: generator, parser: parser, schema: schema}
}

// Name returns the name of this DataSource
func (ms *DataSource) Name() string {
	return ms.name
}

// IsSource returns true, since DataSources ignore their input
func (ms *DataSource) IsSource() bool {
	return true
}

// NumBatches returns the number of batches generated so far
func (ms *DataSource) NumBatches() int {
	return ms.batches
}

// Execute returns an iterator over the stream. No data is generated until the result is pulled.
func (ms *DataSource) Execute(ctx context.Context, input etl.RowIterator) (etl.RowIterator, error) {
	if ms.generator == nil || ms.parser == nil {
		return nil, errors.ConfigError{Component: ms.name, Reason: "a generator and a parser are required"}
	}
	return &streamIterator{ctx: ctx, source: ms, input: input}, nil
}

type streamIterator struct {
	ctx     context.Context
	source  *DataSource
	input   etl.RowIterator
	current etl.RowIterator
	done    bool
	closer  iterator.Closer
}

func (it *streamIterator) Next() (etl.Row, error) {
	for {
		if it.done || it.closer.IsClosed() {
			return nil, errors.NoMoreRowsError{}
		}
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
		if err := it.ctx.Err(); err != nil {
			return nil, err
		}
		batch := it.source.generator()
		if batch == nil {
			it.done = true
			continue
		}
		it.source.batches++
		parsed, err := it.source.parser.Parse(bytes.NewReader(batch), it.source.schema)
		if err != nil {
			return nil, errors.SourceIOError{Source: it.source.name, Err: err}
		}
		it.current = parsed
	}
}

func (it *streamIterator) Close() error {
	return it.closer.Close(func() error {
		return iterator.CloseAll(it.current, it.input)
	})
}
