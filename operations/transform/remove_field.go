package transform

import (
	"github.com/go-sif/etl"
)

// RemoveField removes existing fields. Fields which are already absent are ignored.
func RemoveField(name string, oldNames ...string) etl.Stage {
	return Map(name, func(r etl.Row) error {
		for _, oldName := range oldNames {
			r.Remove(oldName)
		}
		return nil
	})
}
