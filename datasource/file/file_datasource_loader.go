package file

import (
	"fmt"
	"os"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/internal/compress"
	"github.com/hashicorp/go-multierror"
)

// loader holds a single open file and the Rows being parsed from it
type loader struct {
	source       *DataSource
	path         string
	file         *os.File
	decompressor interface{ Close() error }
	rows         etl.RowIterator
}

// load opens a file and begins parsing it
func load(source *DataSource, path string) (*loader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	source.open++
	l := &loader{source: source, path: path, file: f}
	r, err := compress.ForPath(path).NewReader(f)
	if err != nil {
		return nil, l.abort(fmt.Errorf("%s: %w", path, err))
	}
	l.decompressor = r
	rows, err := source.parser.Parse(r, source.schema)
	if err != nil {
		return nil, l.abort(fmt.Errorf("%s: %w", path, err))
	}
	l.rows = rows
	return l, nil
}

func (l *loader) abort(err error) error {
	if cerr := l.close(); cerr != nil {
		return multierror.Append(err, cerr)
	}
	return err
}

// close releases the parser, decompressor and file, in that order
func (l *loader) close() error {
	var multierr *multierror.Error
	if l.rows != nil {
		if err := l.rows.Close(); err != nil {
			multierr = multierror.Append(multierr, err)
		}
		l.rows = nil
	}
	if l.decompressor != nil {
		if err := l.decompressor.Close(); err != nil {
			multierr = multierror.Append(multierr, err)
		}
		l.decompressor = nil
	}
	if l.file != nil {
		if err := l.file.Close(); err != nil {
			multierr = multierror.Append(multierr, err)
		}
		l.file = nil
		l.source.open--
	}
	return multierr.ErrorOrNil()
}
