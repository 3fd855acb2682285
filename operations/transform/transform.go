// Package transform contains stateless, row-at-a-time Stages. Every Stage in this package
// preserves the order of its input, and never retains an input Row after pulling the next one.
package transform

import (
	"context"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
	"github.com/go-sif/etl/internal/iterator"
	"github.com/go-sif/etl/row"
)

// kernel computes the output Rows for a single input Row
type kernel func(r etl.Row, newRow etl.RowFactory) ([]etl.Row, error)

type transformStage struct {
	name string
	fn   kernel
}

// Name returns the name of this Stage
func (s *transformStage) Name() string {
	return s.name
}

// Execute wires this Stage to its input. No Rows are processed until the result is pulled.
func (s *transformStage) Execute(ctx context.Context, input etl.RowIterator) (etl.RowIterator, error) {
	if input == nil {
		return nil, errors.ConfigError{Component: s.name, Reason: "transform stages require an input"}
	}
	return &transformIterator{stage: s, input: input}, nil
}

type transformIterator struct {
	stage    *transformStage
	input    etl.RowIterator
	pending  []etl.Row
	rowIndex int64
	done     bool
	closer   iterator.Closer
}

// Next pulls input Rows until the kernel produces at least one output Row
func (t *transformIterator) Next() (etl.Row, error) {
	for len(t.pending) == 0 {
		if t.done || t.closer.IsClosed() {
			return nil, errors.NoMoreRowsError{}
		}
		in, err := t.input.Next()
		if errors.IsNoMoreRows(err) {
			t.done = true
			return nil, err
		} else if err != nil {
			return nil, err
		}
		idx := t.rowIndex
		t.rowIndex++
		out, err := t.stage.fn(in, row.CreateEmptyRow)
		if err != nil {
			return nil, errors.RowError{RowIndex: idx, Err: err}
		}
		t.pending = out
	}
	next := t.pending[0]
	t.pending[0] = nil
	t.pending = t.pending[1:]
	return next, nil
}

// Close releases pending Rows and closes the input
func (t *transformIterator) Close() error {
	return t.closer.Close(func() error {
		t.pending = nil
		return t.input.Close()
	})
}
