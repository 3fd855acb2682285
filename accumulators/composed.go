package accumulators

import (
	"github.com/go-sif/etl"
)

// Compose returns a new Composed Accumulator
func Compose(accs ...etl.Accumulator) *Composed {
	return &Composed{accs: accs}
}

// Composed composes other Accumulators
type Composed struct {
	accs []etl.Accumulator
}

// GetResults returns the contained Accumulators, so that their results may be accessed
func (c *Composed) GetResults() []etl.Accumulator {
	return c.accs
}

// Accumulate adds a row to all contained Accumulators
func (c *Composed) Accumulate(row etl.Row) error {
	for _, a := range c.accs {
		err := a.Accumulate(row)
		if err != nil {
			return err
		}
	}
	return nil
}
