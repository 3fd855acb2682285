package util

import (
	"context"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
	"github.com/go-sif/etl/internal/iterator"
)

type limitStage struct {
	name  string
	limit int64
}

// Limit returns a Stage which yields at most n Rows, closing its input as soon as
// the limit is reached rather than waiting for the Pipeline to finish
func Limit(name string, n int64) etl.Stage {
	return &limitStage{name: name, limit: n}
}

// Name returns the name of this Stage
func (s *limitStage) Name() string {
	return s.name
}

// Execute wires this Stage to its input
func (s *limitStage) Execute(ctx context.Context, input etl.RowIterator) (etl.RowIterator, error) {
	if s.limit < 0 {
		return nil, errors.ConfigError{Component: s.name, Reason: "limit cannot be negative"}
	}
	if input == nil {
		input = iterator.Empty()
	}
	return &limitIterator{stage: s, input: input}, nil
}

type limitIterator struct {
	stage   *limitStage
	input   etl.RowIterator
	yielded int64
	closer  iterator.Closer
}

func (l *limitIterator) Next() (etl.Row, error) {
	if l.closer.IsClosed() {
		return nil, errors.NoMoreRowsError{}
	}
	if l.yielded >= l.stage.limit {
		if err := l.Close(); err != nil {
			return nil, err
		}
		return nil, errors.NoMoreRowsError{}
	}
	r, err := l.input.Next()
	if err != nil {
		return nil, err
	}
	l.yielded++
	return r, nil
}

func (l *limitIterator) Close() error {
	return l.closer.Close(l.input.Close)
}
