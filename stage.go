package etl

import "context"

// RowIterator is a pull-based, lazily evaluated sequence of Rows.
// Next returns errors.NoMoreRowsError once the sequence is exhausted,
// and keeps doing so on every subsequent call.
type RowIterator interface {
	Next() (Row, error)
	// Close releases any resources held by this iterator and by the iterators it pulls from.
	// Close is idempotent, and must be called even if the iterator is not exhausted.
	Close() error
}

// Stage is the unit of computation in a Pipeline. Execute wires a Stage to its input
// and returns its output, but must not process any Rows: all work happens as the
// returned RowIterator is pulled. A Stage which acts as a Source ignores its input.
// Execute only returns an error if the Stage cannot be wired at all.
type Stage interface {
	Name() string
	Execute(ctx context.Context, input RowIterator) (RowIterator, error)
}
