// Package dsv parses and writes delimiter-separated values, such as CSV and TSV
package dsv

import (
	"encoding/csv"
	"io"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
)

// ParserConf configures a DSV Parser
type ParserConf struct {
	HeaderLines int    // The number of lines to ignore from the beginning of each file. Defaults to 0.
	Delimiter   rune   // The delimiter separating columns in the file. Defaults to ,
	Comment     rune   // Lines beginning with the comment character are ignored. Cannot be equal to the Delimiter. Defaults to no comment character.
	NilValue    string // A special string which represents nil values in the dataset. Defaults to "" (the empty string).
}

// Parser produces Rows from DSV data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new DSV Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf == nil {
		conf = &ParserConf{}
	}
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	return &Parser{conf: conf}
}

// Parse returns an iterator which parses one record of DSV data into a Row per call to Next.
// Each record must contain exactly one column per Schema column.
func (p *Parser) Parse(r io.Reader, schema etl.Schema) (etl.RowIterator, error) {
	if schema == nil || schema.NumColumns() == 0 {
		return nil, errors.ConfigError{Component: "dsv", Reason: "a schema with at least one column is required"}
	}
	if p.conf.Comment != 0 && p.conf.Comment == p.conf.Delimiter {
		return nil, errors.ConfigError{Component: "dsv", Reason: "the comment character cannot be the delimiter"}
	}
	// start parsing by creating a reader
	reader := csv.NewReader(r)
	reader.Comma = p.conf.Delimiter
	reader.Comment = p.conf.Comment
	reader.FieldsPerRecord = schema.NumColumns()
	reader.ReuseRecord = true

	// ignore header lines, if configured to do so
	for i := 0; i < p.conf.HeaderLines; i++ {
		_, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
	}

	return &dsvRowIterator{
		parser: p,
		reader: reader,
		names:  schema.ColumnNames(),
		kinds:  schema.ColumnKinds(),
	}, nil
}
