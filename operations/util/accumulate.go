package util

import (
	"context"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
	"github.com/go-sif/etl/internal/iterator"
	iutil "github.com/go-sif/etl/internal/util"
)

type accumulateStage struct {
	name string
	acc  etl.Accumulator
}

// Accumulate returns a pass-through Stage which feeds every Row to an Accumulator
func Accumulate(name string, acc etl.Accumulator) etl.Stage {
	return &accumulateStage{name: name, acc: acc}
}

// Name returns the name of this Stage
func (s *accumulateStage) Name() string {
	return s.name
}

// Execute wires this Stage to its input
func (s *accumulateStage) Execute(ctx context.Context, input etl.RowIterator) (etl.RowIterator, error) {
	if s.acc == nil {
		return nil, errors.ConfigError{Component: s.name, Reason: "an accumulator is required"}
	}
	if input == nil {
		input = iterator.Empty()
	}
	return &observeIterator{input: input, observe: iutil.SafeMapOperation(s.acc.Accumulate)}, nil
}
