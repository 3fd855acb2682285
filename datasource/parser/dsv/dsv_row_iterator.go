package dsv

import (
	"encoding/csv"
	"io"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
)

type dsvRowIterator struct {
	parser *Parser
	reader *csv.Reader
	names  []string
	kinds  []etl.Kind
	done   bool
}

// Next parses the next record into a Row
func (dsvi *dsvRowIterator) Next() (etl.Row, error) {
	if dsvi.done {
		return nil, errors.NoMoreRowsError{}
	}
	rowStrings, err := dsvi.reader.Read()
	if err == io.EOF {
		dsvi.done = true
		return nil, errors.NoMoreRowsError{}
	} else if err != nil {
		return nil, err
	}
	return scanRow(dsvi.parser.conf, dsvi.names, dsvi.kinds, rowStrings)
}

// Close stops parsing. The underlying reader belongs to the caller.
func (dsvi *dsvRowIterator) Close() error {
	dsvi.done = true
	return nil
}
