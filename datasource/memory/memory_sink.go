package memory

import (
	"context"

	"github.com/go-sif/etl"
)

// Sink collects Rows in memory
type Sink struct {
	name   string
	rows   []etl.Row
	closed bool
}

// CreateSink is a factory for Sinks
func CreateSink(name string) *Sink {
	return &Sink{name: name}
}

// Name returns the name of this Sink
func (s *Sink) Name() string {
	return s.name
}

// Write stores a copy of a Row
func (s *Sink) Write(ctx context.Context, row etl.Row) error {
	s.rows = append(s.rows, row.Clone())
	return nil
}

// Close marks this Sink as closed. Collected Rows remain available.
func (s *Sink) Close() error {
	s.closed = true
	return nil
}

// Rows returns the Rows written to this Sink so far
func (s *Sink) Rows() []etl.Row {
	return s.rows
}

// IsClosed returns true iff Close has been called
func (s *Sink) IsClosed() bool {
	return s.closed
}
