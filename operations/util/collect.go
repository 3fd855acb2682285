package util

import (
	"context"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
	"github.com/go-sif/etl/internal/iterator"
)

// Collector is a pass-through Stage which keeps copies of the Rows flowing through it,
// so that they may be inspected once a Pipeline has finished
type Collector struct {
	name            string
	collectionLimit int
	rows            []etl.Row
	truncated       bool
}

// Collect returns a Collector which retains at most collectionLimit Rows. A limit of
// zero or less retains every Row.
func Collect(name string, collectionLimit int) *Collector {
	return &Collector{name: name, collectionLimit: collectionLimit}
}

// Name returns the name of this Stage
func (c *Collector) Name() string {
	return c.name
}

// Rows returns the collected Rows, in arrival order
func (c *Collector) Rows() []etl.Row {
	return c.rows
}

// Truncated returns true iff more Rows passed through this Collector than it retained
func (c *Collector) Truncated() bool {
	return c.truncated
}

// Execute wires this Stage to its input
func (c *Collector) Execute(ctx context.Context, input etl.RowIterator) (etl.RowIterator, error) {
	if input == nil {
		input = iterator.Empty()
	}
	return &observeIterator{input: input, observe: func(r etl.Row) error {
		if c.collectionLimit > 0 && len(c.rows) >= c.collectionLimit {
			c.truncated = true
			return nil
		}
		c.rows = append(c.rows, r.Clone())
		return nil
	}}, nil
}

// observeIterator hands every Row to a callback before passing it along
type observeIterator struct {
	input    etl.RowIterator
	observe  func(etl.Row) error
	rowIndex int64
}

func (o *observeIterator) Next() (etl.Row, error) {
	r, err := o.input.Next()
	if err != nil {
		return nil, err
	}
	idx := o.rowIndex
	o.rowIndex++
	if err := o.observe(r); err != nil {
		return nil, errors.RowError{RowIndex: idx, Err: err}
	}
	return r, nil
}

func (o *observeIterator) Close() error {
	return o.input.Close()
}
