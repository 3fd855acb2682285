// Package util contains Stages which terminate, truncate or observe a stream of Rows
package util

import (
	"context"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
	"github.com/go-sif/etl/internal/iterator"
	"github.com/hashicorp/go-multierror"
)

type writeStage struct {
	name string
	sink etl.Sink
}

// Write returns a Stage which drains its input into a Sink, producing no Rows itself.
// The Sink is closed on every exit path, exactly once.
func Write(name string, sink etl.Sink) etl.Stage {
	return &writeStage{name: name, sink: sink}
}

// Name returns the name of this Stage
func (s *writeStage) Name() string {
	return s.name
}

// Execute wires this Stage to its input. Nothing is written until the result is pulled.
func (s *writeStage) Execute(ctx context.Context, input etl.RowIterator) (etl.RowIterator, error) {
	if s.sink == nil {
		return nil, errors.ConfigError{Component: s.name, Reason: "a sink is required"}
	}
	if input == nil {
		input = iterator.Empty()
	}
	return &writeIterator{ctx: ctx, stage: s, input: input}, nil
}

type writeIterator struct {
	ctx      context.Context
	stage    *writeStage
	input    etl.RowIterator
	rowIndex int64
	closer   iterator.Closer
}

// Next writes every remaining input Row, then reports exhaustion
func (w *writeIterator) Next() (etl.Row, error) {
	if w.closer.IsClosed() {
		return nil, errors.NoMoreRowsError{}
	}
	for {
		r, err := w.input.Next()
		if errors.IsNoMoreRows(err) {
			break
		} else if err != nil {
			return nil, err
		}
		if err := w.stage.sink.Write(w.ctx, r); err != nil {
			return nil, errors.RowError{
				RowIndex: w.rowIndex,
				Err:      errors.SinkIOError{Sink: w.stage.sink.Name(), Err: err},
			}
		}
		w.rowIndex++
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return nil, errors.NoMoreRowsError{}
}

// Close closes the input and the Sink
func (w *writeIterator) Close() error {
	return w.closer.Close(func() error {
		var multierr *multierror.Error
		if err := w.input.Close(); err != nil {
			multierr = multierror.Append(multierr, err)
		}
		if err := w.stage.sink.Close(); err != nil {
			multierr = multierror.Append(multierr, errors.SinkIOError{Sink: w.stage.sink.Name(), Err: err})
		}
		return multierr.ErrorOrNil()
	})
}
