package etl

// Schema is an ordered list of field declarations, mapping field names to Kinds.
// Parsers use a Schema to type raw data, and SQL sinks use one to choose columns.
type Schema interface {
	Clone() Schema
	NumColumns() int
	HasColumn(name string) bool
	GetKind(name string) (Kind, error)
	CreateColumn(name string, kind Kind) (newSchema Schema, err error)
	ColumnNames() []string
	ColumnKinds() []Kind
}
