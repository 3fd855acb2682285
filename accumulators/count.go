package accumulators

import (
	"github.com/go-sif/etl"
)

// Counter returns a new Count Accumulator
func Counter() *Count {
	return new(Count)
}

// Count counts records
type Count struct {
	count uint64
}

// GetCount returns the row count from this Accumulator
func (a *Count) GetCount() uint64 {
	return a.count
}

// Accumulate adds a row to this Accumulator
func (a *Count) Accumulate(row etl.Row) error {
	a.count++
	return nil
}
