package iterator

import (
	stderrors "errors"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
)

// Attribute wraps err in an errors.StageError naming the Stage which raised it, unless
// it has already been attributed further upstream. A top-level errors.RowError donates its
// row index to the StageError. Index is the position of the Stage in its Pipeline, or -1.
func Attribute(stage string, index int, err error) error {
	if err == nil || errors.IsNoMoreRows(err) {
		return err
	}
	var attributed errors.StageError
	if stderrors.As(err, &attributed) {
		return err
	}
	rowIndex := int64(-1)
	if re, ok := err.(errors.RowError); ok {
		rowIndex = re.RowIndex
		err = re.Err
	}
	return errors.StageError{Stage: stage, Index: index, RowIndex: rowIndex, Err: err}
}

type attributedIterator struct {
	etl.RowIterator
	stage string
	index int
}

// Attributed wraps a RowIterator such that errors from Next are attributed to the given Stage
func Attributed(it etl.RowIterator, stage string, index int) etl.RowIterator {
	return &attributedIterator{RowIterator: it, stage: stage, index: index}
}

func (a *attributedIterator) Next() (etl.Row, error) {
	r, err := a.RowIterator.Next()
	return r, Attribute(a.stage, a.index, err)
}
