package join

import (
	"context"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
	"github.com/go-sif/etl/internal/iterator"
)

// joinIterator runs the build phase on its first pull, then streams the probe phase
type joinIterator struct {
	ctx           context.Context
	stage         *joinStage
	input         etl.RowIterator // the Stage's own input, when it is not the probe side
	left          etl.RowIterator
	right         etl.RowIterator
	leftProjector *keyProjector
	table         *buildTable

	current      etl.Row // the left Row whose matches are being emitted
	currentIndex int64
	matches      []etl.Row
	nextMatch    int

	leftIndex int64
	matched   int64
	unmatched int64
	done      bool
	closer    iterator.Closer
}

// build pulls the entire right side into the build table, then releases it
func (j *joinIterator) build() error {
	table := createBuildTable()
	projector := createKeyProjector(j.stage.rightFields)
	skipped := 0
	for idx := int64(0); ; idx++ {
		if err := j.ctx.Err(); err != nil {
			return err
		}
		r, err := j.right.Next()
		if errors.IsNoMoreRows(err) {
			break
		} else if err != nil {
			return err
		}
		key, err := projector.project(r)
		if err != nil {
			return iterator.Attribute(j.stage.conf.Right.Name(), -1, errors.RowError{RowIndex: idx, Err: err})
		}
		if key.null {
			skipped++
			continue
		}
		table.insert(key, r.Clone())
	}
	if err := j.right.Close(); err != nil {
		return err
	}
	j.table = table
	j.stage.logger.Debug("built join table",
		"rows", table.numRows,
		"keys", table.numBuckets,
		"null_keys", skipped,
	)
	return nil
}

// emit merges the current left Row with its next match. The left Row is cloned unless
// this is its last match, and bucket Rows are always cloned, so merge functions cannot
// corrupt Rows which are still needed.
func (j *joinIterator) emit() (etl.Row, error) {
	right := j.matches[j.nextMatch].Clone()
	j.nextMatch++
	left := j.current
	last := j.nextMatch >= len(j.matches)
	if last {
		j.current = nil
		j.matches = nil
	} else {
		left = left.Clone()
	}
	out, err := j.stage.merge(left, right)
	if err != nil {
		return nil, errors.RowError{RowIndex: j.currentIndex, Err: err}
	}
	return out, nil
}

// Next returns the next joined Row
func (j *joinIterator) Next() (etl.Row, error) {
	if j.done || j.closer.IsClosed() {
		return nil, errors.NoMoreRowsError{}
	}
	if j.table == nil {
		if err := j.build(); err != nil {
			j.done = true
			return nil, err
		}
	}
	for {
		if j.current != nil {
			return j.emit()
		}
		l, err := j.left.Next()
		if errors.IsNoMoreRows(err) {
			j.done = true
			j.stage.logger.Debug("finished join probe",
				"left_rows", j.leftIndex,
				"matched", j.matched,
				"unmatched", j.unmatched,
			)
			return nil, err
		} else if err != nil {
			return nil, err
		}
		idx := j.leftIndex
		j.leftIndex++
		key, err := j.leftProjector.project(l)
		if err != nil {
			return nil, errors.RowError{RowIndex: idx, Err: err}
		}
		matches := j.table.lookup(key)
		if len(matches) == 0 {
			j.unmatched++
			if j.stage.conf.Mode != LeftOuter {
				continue
			}
			out, err := j.stage.merge(l, nil)
			if err != nil {
				return nil, errors.RowError{RowIndex: idx, Err: err}
			}
			return out, nil
		}
		j.matched++
		j.current = l
		j.currentIndex = idx
		j.matches = matches
		j.nextMatch = 0
	}
}

// Close drops the build table and closes both sides of the join
func (j *joinIterator) Close() error {
	return j.closer.Close(func() error {
		if j.table != nil {
			j.table.clear()
		}
		j.current = nil
		j.matches = nil
		return iterator.CloseAll(j.left, j.right, j.input)
	})
}
