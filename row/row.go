// Package row provides the standard implementation of etl.Row
package row

import (
	"fmt"
	"strings"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
)

// rowImpl is an ordered mapping from field names to Values.
// names holds field order, values holds the data. Neither is
// ever shared with another rowImpl.
type rowImpl struct {
	names  []string
	values map[string]etl.Value
}

// Field is a named Value, used to build Rows
type Field struct {
	Name  string
	Value etl.Value
}

// F is shorthand for building a Field
func F(name string, value etl.Value) Field {
	return Field{Name: name, Value: value}
}

// CreateRow builds a new Row from an ordered list of Fields. Later Fields replace earlier Fields with the same name.
func CreateRow(fields ...Field) etl.Row {
	r := &rowImpl{
		names:  make([]string, 0, len(fields)),
		values: make(map[string]etl.Value, len(fields)),
	}
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

// CreateEmptyRow builds a Row with no fields. Suitable as an etl.RowFactory.
func CreateEmptyRow() etl.Row {
	return CreateRow()
}

// FromMap builds a Row from native Go values. Since Go maps are unordered,
// field order is given explicitly by names, which must cover every key in data.
func FromMap(names []string, data map[string]interface{}) (etl.Row, error) {
	if len(names) != len(data) {
		return nil, fmt.Errorf("Expected %d field names for %d values", len(data), len(names))
	}
	r := CreateRow().(*rowImpl)
	for _, name := range names {
		raw, ok := data[name]
		if !ok {
			return nil, errors.FieldNotFoundError{Field: name}
		}
		val, err := etl.ValueOf(raw)
		if err != nil {
			if tme, ok := err.(errors.TypeMismatchError); ok {
				tme.Field = name
				return nil, tme
			}
			return nil, err
		}
		r.Set(name, val)
	}
	return r, nil
}

// ToMap converts a Row into a map of native Go values
func ToMap(r etl.Row) map[string]interface{} {
	res := make(map[string]interface{}, r.Len())
	r.ForEachField(func(name string, value etl.Value) error {
		res[name] = value.Interface()
		return nil
	})
	return res
}

// ToString returns a string representation of this row
func (r *rowImpl) ToString() string {
	var res strings.Builder
	fmt.Fprint(&res, "{")
	for i, name := range r.names {
		if i > 0 {
			fmt.Fprint(&res, ", ")
		}
		fmt.Fprintf(&res, "\"%s\": %s", name, r.values[name].ToString())
	}
	fmt.Fprint(&res, "}")
	return res.String()
}

// Len returns the number of fields in this row
func (r *rowImpl) Len() int {
	return len(r.names)
}

// FieldNames returns a copy of the field names in this row, in order
func (r *rowImpl) FieldNames() []string {
	return append(make([]string, 0, len(r.names)), r.names...)
}

// Has returns true iff the given field exists in this row
func (r *rowImpl) Has(field string) bool {
	_, ok := r.values[field]
	return ok
}

// IsNil returns true iff the given field is absent or null in this row
func (r *rowImpl) IsNil(field string) bool {
	v, ok := r.values[field]
	return !ok || v.IsNull()
}

// Get returns the value of any field, if it exists
func (r *rowImpl) Get(field string) (etl.Value, error) {
	v, ok := r.values[field]
	if !ok {
		return etl.Null(), errors.FieldNotFoundError{Field: field}
	}
	return v, nil
}

// attribute fills in the field name on errors produced by etl.Value accessors
func attribute(field string, err error) error {
	switch e := err.(type) {
	case errors.TypeMismatchError:
		e.Field = field
		return e
	case errors.NilValueError:
		e.Name = field
		return e
	default:
		return err
	}
}

// GetInt retrieves an integer from the field with the given name
func (r *rowImpl) GetInt(field string) (int64, error) {
	v, err := r.Get(field)
	if err != nil {
		return 0, err
	}
	i, err := v.AsInt()
	return i, attribute(field, err)
}

// GetFloat retrieves a floating point number from the field with the given name
func (r *rowImpl) GetFloat(field string) (float64, error) {
	v, err := r.Get(field)
	if err != nil {
		return 0, err
	}
	f, err := v.AsFloat()
	return f, attribute(field, err)
}

// GetString retrieves a string from the field with the given name
func (r *rowImpl) GetString(field string) (string, error) {
	v, err := r.Get(field)
	if err != nil {
		return "", err
	}
	s, err := v.AsString()
	return s, attribute(field, err)
}

// GetBool retrieves a bool from the field with the given name
func (r *rowImpl) GetBool(field string) (bool, error) {
	v, err := r.Get(field)
	if err != nil {
		return false, err
	}
	b, err := v.AsBool()
	return b, attribute(field, err)
}

// GetBytes retrieves a copy of the binary data in the field with the given name
func (r *rowImpl) GetBytes(field string) ([]byte, error) {
	v, err := r.Get(field)
	if err != nil {
		return nil, err
	}
	b, err := v.AsBytes()
	return b, attribute(field, err)
}

// Set replaces the value of a field, or appends the field if it does not exist
func (r *rowImpl) Set(field string, value etl.Value) {
	if _, ok := r.values[field]; !ok {
		r.names = append(r.names, field)
	}
	r.values[field] = value.Clone()
}

// SetNil sets the given field to null
func (r *rowImpl) SetNil(field string) {
	r.Set(field, etl.Null())
}

// SetInt stores an integer in the field with the given name
func (r *rowImpl) SetInt(field string, value int64) {
	r.Set(field, etl.Int(value))
}

// SetFloat stores a floating point number in the field with the given name
func (r *rowImpl) SetFloat(field string, value float64) {
	r.Set(field, etl.Float(value))
}

// SetString stores a string in the field with the given name
func (r *rowImpl) SetString(field string, value string) {
	r.Set(field, etl.String(value))
}

// SetBool stores a bool in the field with the given name
func (r *rowImpl) SetBool(field string, value bool) {
	r.Set(field, etl.Bool(value))
}

// SetBytes stores a copy of binary data in the field with the given name
func (r *rowImpl) SetBytes(field string, value []byte) {
	r.Set(field, etl.Bytes(value))
}

// Remove deletes a field, returning true iff it existed
func (r *rowImpl) Remove(field string) bool {
	if _, ok := r.values[field]; !ok {
		return false
	}
	delete(r.values, field)
	for i, name := range r.names {
		if name == field {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
	return true
}

// Rename renames a field in place, keeping its position
func (r *rowImpl) Rename(oldName string, newName string) error {
	v, ok := r.values[oldName]
	if !ok {
		return errors.FieldNotFoundError{Field: oldName}
	}
	if oldName == newName {
		return nil
	}
	if _, exists := r.values[newName]; exists {
		return errors.DuplicateFieldError{Field: newName}
	}
	delete(r.values, oldName)
	r.values[newName] = v
	for i, name := range r.names {
		if name == oldName {
			r.names[i] = newName
			break
		}
	}
	return nil
}

// ForEachField iterates over fields in order, stopping at the first error
func (r *rowImpl) ForEachField(fn func(name string, value etl.Value) error) error {
	for _, name := range r.names {
		if err := fn(name, r.values[name]); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a row with fully independent field storage
func (r *rowImpl) Clone() etl.Row {
	clone := &rowImpl{
		names:  make([]string, len(r.names)),
		values: make(map[string]etl.Value, len(r.values)),
	}
	copy(clone.names, r.names)
	for name, v := range r.values {
		clone.values[name] = v.Clone()
	}
	return clone
}
