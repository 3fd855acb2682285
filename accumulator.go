package etl

// An Accumulator siphons Rows into a custom data structure as they flow past, so that
// aggregate results (counts, sums) are available once a Pipeline has finished, without
// altering the Rows themselves.
type Accumulator interface {
	Accumulate(row Row) error // Accumulate adds a row to this Accumulator
}
