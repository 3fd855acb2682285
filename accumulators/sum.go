package accumulators

import (
	"github.com/go-sif/etl"
)

// Adder returns a new Sum Accumulator over a numeric field
func Adder(fieldName string) *Sum {
	return &Sum{fieldName: fieldName}
}

// Sum Sums records. Null values are skipped.
type Sum struct {
	fieldName string
	sum       float64
}

// GetSum returns the row Sum from this Accumulator
func (a *Sum) GetSum() float64 {
	return a.sum
}

// Accumulate adds a row to this Accumulator
func (a *Sum) Accumulate(row etl.Row) error {
	v, err := row.Get(a.fieldName)
	if err != nil {
		return err
	}
	if v.IsNull() {
		return nil
	}
	f, err := v.AsFloat()
	if err != nil {
		return err
	}
	a.sum += f
	return nil
}
