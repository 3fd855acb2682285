package jsonl

import (
	"bufio"
	"strings"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
)

type jsonlRowIterator struct {
	parser  *Parser
	scanner *bufio.Scanner
	names   []string
	kinds   []etl.Kind
	line    int
	done    bool
}

// Next parses the next non-blank line into a Row
func (jsonli *jsonlRowIterator) Next() (etl.Row, error) {
	for !jsonli.done {
		if !jsonli.scanner.Scan() {
			jsonli.done = true
			if err := jsonli.scanner.Err(); err != nil {
				return nil, err
			}
			break
		}
		jsonli.line++
		rowString := strings.TrimSpace(jsonli.scanner.Text())
		if len(rowString) == 0 {
			continue
		}
		if comment := jsonli.parser.conf.Comment; comment != 0 && strings.HasPrefix(rowString, string(comment)) {
			continue
		}
		return scanRow(jsonli.names, jsonli.kinds, rowString)
	}
	return nil, errors.NoMoreRowsError{}
}

// Close stops parsing. The underlying reader belongs to the caller.
func (jsonli *jsonlRowIterator) Close() error {
	jsonli.done = true
	return nil
}
