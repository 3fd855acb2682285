package transform

import (
	"github.com/go-sif/etl"
)

// FieldOperation computes the Value of a field from the rest of a Row
type FieldOperation func(row etl.Row) (etl.Value, error)

// WithField sets a field (creating it if necessary) to the Value computed by fn
func WithField(name string, field string, fn FieldOperation) etl.Stage {
	return Map(name, func(r etl.Row) error {
		v, err := fn(r)
		if err != nil {
			return err
		}
		r.Set(field, v)
		return nil
	})
}
