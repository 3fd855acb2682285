package pipeline

import (
	"bufio"
	"io"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/internal/iterator"
	"github.com/go-sif/etl/row"
)

// lineParser produces one Row per line of input, with the line in the field "AWord"
type lineParser struct{}

func (lineParser) Parse(r io.Reader, schema etl.Schema) (etl.RowIterator, error) {
	scanner := bufio.NewScanner(r)
	var rows []etl.Row
	for scanner.Scan() {
		rows = append(rows, row.CreateRow(row.F("AWord", etl.String(scanner.Text()))))
	}
	return iterator.FromSlice(rows), scanner.Err()
}
