package jsonl

import (
	"bufio"
	"io"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
)

// ParserConf configures a JSONL Parser, suitable for JSON lines data
type ParserConf struct {
	HeaderLines   int  // The number of lines to ignore from the beginning of each file. Defaults to 0.
	Comment       rune // Lines beginning with the comment character are ignored. Defaults to no comment character.
	MaxBufferSize int  // Maximum size in bytes of the buffer used to read lines from the file
}

// Parser produces Rows from JSONL data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new JSONL Parser. Columns are parsed lazily from each row of JSON using their column name, which should be a gjson path. Values within the JSON which do not correspond to a Schema column are ignored.
func CreateParser(conf *ParserConf) *Parser {
	if conf == nil {
		conf = &ParserConf{}
	}
	if conf.MaxBufferSize == 0 {
		conf.MaxBufferSize = bufio.MaxScanTokenSize
	}
	return &Parser{conf: conf}
}

// Parse returns an iterator which parses one line of JSON into a Row per call to Next. Blank lines are skipped.
func (p *Parser) Parse(r io.Reader, schema etl.Schema) (etl.RowIterator, error) {
	if schema == nil || schema.NumColumns() == 0 {
		return nil, errors.ConfigError{Component: "jsonl", Reason: "a schema with at least one column is required"}
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(p.conf.MaxBufferSize, 4096)), p.conf.MaxBufferSize)
	for i := 0; i < p.conf.HeaderLines; i++ {
		if !scanner.Scan() {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return &jsonlRowIterator{
		parser:  p,
		scanner: scanner,
		names:   schema.ColumnNames(),
		kinds:   schema.ColumnKinds(),
	}, nil
}
