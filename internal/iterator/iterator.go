// Package iterator contains the plumbing shared by etl.RowIterator implementations
package iterator

import (
	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
	"github.com/hashicorp/go-multierror"
)

type emptyIterator struct{}

// Empty returns a RowIterator which produces no Rows. It is the input of the first Stage in a Pipeline.
func Empty() etl.RowIterator {
	return emptyIterator{}
}

func (emptyIterator) Next() (etl.Row, error) {
	return nil, errors.NoMoreRowsError{}
}

func (emptyIterator) Close() error {
	return nil
}

type sliceIterator struct {
	rows []etl.Row
	next int
}

// FromSlice returns a RowIterator over the given Rows. The Rows are handed out as-is.
func FromSlice(rows []etl.Row) etl.RowIterator {
	return &sliceIterator{rows: rows}
}

func (s *sliceIterator) Next() (etl.Row, error) {
	if s.next >= len(s.rows) {
		return nil, errors.NoMoreRowsError{}
	}
	r := s.rows[s.next]
	s.next++
	return r, nil
}

func (s *sliceIterator) Close() error {
	s.next = len(s.rows)
	s.rows = nil
	return nil
}

// Drain pulls every remaining Row out of an iterator, then closes it
func Drain(it etl.RowIterator) (rows []etl.Row, err error) {
	defer func() {
		if cerr := it.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	for {
		r, err := it.Next()
		if errors.IsNoMoreRows(err) {
			return rows, nil
		} else if err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
}

// CloseAll closes every given iterator (skipping nils), even if some fail, and combines their errors
func CloseAll(its ...etl.RowIterator) error {
	var multierr *multierror.Error
	for _, it := range its {
		if it == nil {
			continue
		}
		if err := it.Close(); err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	return multierr.ErrorOrNil()
}

// Closer makes a release function idempotent and remembers whether it has run
type Closer struct {
	closed bool
}

// Close runs release the first time it is called, and does nothing afterwards
func (c *Closer) Close(release func() error) error {
	if c.closed {
		return nil
	}
	c.closed = true
	return release()
}

// IsClosed returns true iff Close has been called
func (c *Closer) IsClosed() bool {
	return c.closed
}
