package transform

import (
	"github.com/go-sif/etl"
)

// RenameField renames an existing field. Fails with a FieldNotFoundError if the field is absent.
func RenameField(name string, oldName string, newName string) etl.Stage {
	return Map(name, func(r etl.Row) error {
		return r.Rename(oldName, newName)
	})
}
