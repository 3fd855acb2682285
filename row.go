package etl

// Row is a representation of a single record flowing through a Pipeline:
// an ordered mapping from unique field names to Values. Rows never share
// value storage with one another. A Stage which needs to modify a Row it
// does not exclusively own must Clone it first.
type Row interface {
	ToString() string                                           // ToString returns a string representation of this Row
	Len() int                                                   // Len returns the number of fields in this Row
	FieldNames() []string                                       // FieldNames returns a copy of the field names in this Row, in order
	Has(field string) bool                                      // Has returns true iff the given field exists in this Row
	IsNil(field string) bool                                    // IsNil returns true iff the given field is absent or null in this Row
	Get(field string) (Value, error)                            // Get returns the Value of a field, or a FieldNotFoundError
	GetInt(field string) (int64, error)                         // GetInt retrieves an integer from the field with the given name
	GetFloat(field string) (float64, error)                     // GetFloat retrieves a floating point number from the field with the given name
	GetString(field string) (string, error)                     // GetString retrieves a string from the field with the given name
	GetBool(field string) (bool, error)                         // GetBool retrieves a bool from the field with the given name
	GetBytes(field string) ([]byte, error)                      // GetBytes retrieves a copy of the binary data in the field with the given name
	Set(field string, value Value)                              // Set replaces the Value of a field, or appends the field if it does not exist
	SetNil(field string)                                        // SetNil sets the given field to null
	SetInt(field string, value int64)                           // SetInt stores an integer in the field with the given name
	SetFloat(field string, value float64)                       // SetFloat stores a floating point number in the field with the given name
	SetString(field string, value string)                       // SetString stores a string in the field with the given name
	SetBool(field string, value bool)                           // SetBool stores a bool in the field with the given name
	SetBytes(field string, value []byte)                        // SetBytes stores a copy of binary data in the field with the given name
	Remove(field string) bool                                   // Remove deletes a field, returning true iff it existed
	Rename(oldName string, newName string) error                // Rename renames a field in place, keeping its position
	ForEachField(fn func(name string, value Value) error) error // ForEachField iterates over fields in order
	Clone() Row                                                 // Clone returns a Row with fully independent field storage
}
