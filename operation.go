package etl

// RowFactory is a function that produces a fresh, empty Row. Used specifically within a FlatMapOperation,
// a RowFactory gives the client a mechanism to return more Rows than were originally in the input.
type RowFactory func() Row

// MapOperation - A generic function for manipulating a Row. The Row is a private copy, and may be modified freely.
type MapOperation func(row Row) error

// FilterOperation - A generic function for determining whether or not a Row should be retained
type FilterOperation func(row Row) (bool, error)

// FlatMapOperation - A generic function for turning a Row into zero or more Rows. The input Row must not be modified; newRow() produces Rows to return.
type FlatMapOperation func(row Row, newRow RowFactory) ([]Row, error)

// MergeOperation - A generic function for combining a left and right Row produced by a join into a single Row.
// rightRow is nil when a left Row has no match under a left outer join. The returned Row must not alias
// the storage of either argument; Clone one of them to start from.
type MergeOperation func(leftRow Row, rightRow Row) (Row, error)
