package dsv

import (
	"github.com/go-sif/etl"
	"github.com/go-sif/etl/datasource/parser"
	"github.com/go-sif/etl/row"
)

// Parses a slice of strings into a Row, according to a schema
func scanRow(conf *ParserConf, names []string, kinds []etl.Kind, rowStrings []string) (etl.Row, error) {
	r := row.CreateEmptyRow()
	for i := 0; i < len(rowStrings); i++ {
		colVal := rowStrings[i]
		// check for a nil value
		if len(colVal) == 0 || colVal == conf.NilValue {
			r.SetNil(names[i])
			continue
		}
		v, err := parser.ParseText(names[i], kinds[i], colVal)
		if err != nil {
			return nil, err
		}
		r.Set(names[i], v)
	}
	return r, nil
}
