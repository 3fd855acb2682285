package schema

import (
	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
)

// schema is an ordered list of field names and the Kinds
// of the values which are expected to be stored in them.
type schema struct {
	names []string
	kinds map[string]etl.Kind
}

// CreateSchema is a factory for Schemas
func CreateSchema() etl.Schema {
	return &schema{
		names: make([]string, 0),
		kinds: make(map[string]etl.Kind),
	}
}

// Clone returns a copy of this Schema
func (s *schema) Clone() etl.Schema {
	clone := &schema{
		names: make([]string, len(s.names)),
		kinds: make(map[string]etl.Kind, len(s.kinds)),
	}
	copy(clone.names, s.names)
	for k, v := range s.kinds {
		clone.kinds[k] = v
	}
	return clone
}

// NumColumns returns the number of columns in this Schema
func (s *schema) NumColumns() int {
	return len(s.names)
}

// HasColumn returns true iff this schema contains a column with the given name
func (s *schema) HasColumn(colName string) bool {
	_, ok := s.kinds[colName]
	return ok
}

// GetKind returns the Kind of the column with the given name
func (s *schema) GetKind(colName string) (etl.Kind, error) {
	kind, ok := s.kinds[colName]
	if !ok {
		return etl.NullKind, errors.FieldNotFoundError{Field: colName}
	}
	return kind, nil
}

// CreateColumn defines a new column within the Schema. Modifies this Schema in-place, and returns it for chaining.
func (s *schema) CreateColumn(colName string, kind etl.Kind) (newSchema etl.Schema, err error) {
	if _, ok := s.kinds[colName]; ok {
		return nil, errors.DuplicateFieldError{Field: colName}
	}
	s.names = append(s.names, colName)
	s.kinds[colName] = kind
	return s, nil
}

// ColumnNames returns the names in the schema, in index order
func (s *schema) ColumnNames() []string {
	return append(make([]string, 0, len(s.names)), s.names...)
}

// ColumnKinds returns the Kinds in the schema, in index order
func (s *schema) ColumnKinds() []etl.Kind {
	res := make([]etl.Kind, len(s.names))
	for i, name := range s.names {
		res[i] = s.kinds[name]
	}
	return res
}
