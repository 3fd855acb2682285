package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
	"github.com/go-sif/etl/internal/iterator"
)

// DataSource is a set of files, matched by a glob, containing data which will be parsed into Rows
type DataSource struct {
	name   string
	glob   string
	parser etl.DataSourceParser
	schema etl.Schema
	open   int
}

// CreateSource is a factory for DataSources. Matching files are read one at a time, in
// lexical order, and nothing is opened until the first Row is pulled.
func CreateSource(name string, glob string, parser etl.DataSourceParser, schema etl.Schema) *DataSource {
	return &DataSource{name: name, glob: glob, parser: parser, schema: schema}
}

// Name returns the name of this DataSource
func (fs *DataSource) Name() string {
	return fs.name
}

// IsSource returns true, since DataSources ignore their input
func (fs *DataSource) IsSource() bool {
	return true
}

// OpenFiles returns the number of files held open by this DataSource's iterators
func (fs *DataSource) OpenFiles() int {
	return fs.open
}

// Execute returns an iterator over the Rows in every matched file
func (fs *DataSource) Execute(ctx context.Context, input etl.RowIterator) (etl.RowIterator, error) {
	if fs.parser == nil {
		return nil, errors.ConfigError{Component: fs.name, Reason: "a parser is required"}
	}
	if _, err := filepath.Match(fs.glob, ""); err != nil {
		return nil, errors.ConfigError{Component: fs.name, Reason: fmt.Sprintf("invalid glob %s: %v", fs.glob, err)}
	}
	return &fileIterator{ctx: ctx, source: fs, input: input}, nil
}

// analyze lists the files this DataSource will read
func (fs *DataSource) analyze() ([]string, error) {
	matches, err := filepath.Glob(fs.glob)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("glob %s produced 0 files", fs.glob)
	}
	return matches, nil
}

type fileIterator struct {
	ctx      context.Context
	source   *DataSource
	input    etl.RowIterator
	files    []string
	analyzed bool
	current  *loader
	rowIndex int64
	closer   iterator.Closer
}

// Next returns the next Row, opening files as needed
func (it *fileIterator) Next() (etl.Row, error) {
	if it.closer.IsClosed() {
		return nil, errors.NoMoreRowsError{}
	}
	if !it.analyzed {
		files, err := it.source.analyze()
		if err != nil {
			return nil, errors.SourceIOError{Source: it.source.name, Err: err}
		}
		it.files = files
		it.analyzed = true
	}
	for {
		if it.current != nil {
			r, err := it.current.rows.Next()
			if err == nil {
				it.rowIndex++
				return r, nil
			} else if !errors.IsNoMoreRows(err) {
				return nil, errors.RowError{
					RowIndex: it.rowIndex,
					Err:      fmt.Errorf("%s: %w", it.current.path, err),
				}
			}
			if err := it.current.close(); err != nil {
				it.current = nil
				return nil, errors.SourceIOError{Source: it.source.name, Err: err}
			}
			it.current = nil
		}
		if len(it.files) == 0 {
			return nil, errors.NoMoreRowsError{}
		}
		if err := it.ctx.Err(); err != nil {
			return nil, err
		}
		path := it.files[0]
		it.files = it.files[1:]
		l, err := load(it.source, path)
		if err != nil {
			return nil, errors.SourceIOError{Source: it.source.name, Err: err}
		}
		it.current = l
	}
}

// Close releases any open file and closes the input
func (it *fileIterator) Close() error {
	return it.closer.Close(func() error {
		var err error
		if it.current != nil {
			err = it.current.close()
			it.current = nil
		}
		if cerr := iterator.CloseAll(it.input); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			return errors.SourceIOError{Source: it.source.name, Err: err}
		}
		return nil
	})
}
