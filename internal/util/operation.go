package util

import (
	"fmt"

	"github.com/go-sif/etl"
)

// OperationError wraps an error returned by (or a panic raised in) a user-supplied operation,
// along with a rendering of the Row(s) involved. Unwrap exposes the original error so that
// callers can still test for errors.FieldNotFoundError and friends.
type OperationError struct {
	Op    string
	Rows  string
	Trace string
	Err   error
}

// Error returns a textual representation of this OperationError
func (e *OperationError) Error() string {
	if e.Trace != "" {
		return fmt.Sprintf("%s Panic: %v\n%s\n%s", e.Op, e.Err, e.Rows, e.Trace)
	}
	return fmt.Sprintf("%s Error: %v\n%s", e.Op, e.Err, e.Rows)
}

// Unwrap returns the cause of this OperationError
func (e *OperationError) Unwrap() error {
	return e.Err
}

func recovered(op string, r interface{}, rows string) error {
	if anErr, ok := r.(error); ok {
		return &OperationError{Op: op, Rows: rows, Trace: GetTrace(), Err: anErr}
	}
	return &OperationError{Op: op, Rows: rows, Trace: GetTrace(), Err: fmt.Errorf("%v", r)}
}

func describe(label string, row etl.Row) string {
	if row == nil {
		return label + ": <none>"
	}
	return label + ": " + row.ToString()
}

// SafeMapOperation wraps a MapOperation such that panics are recovered and nice error messages are constructed
func SafeMapOperation(mapOp etl.MapOperation) (safeMapOp etl.MapOperation) {
	return func(row etl.Row) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered("Map", r, describe("Row", row))
			} else if err != nil {
				err = &OperationError{Op: "Map", Rows: describe("Row", row), Err: err}
			}
		}()
		err = mapOp(row)
		return
	}
}

// SafeFilterOperation wraps a FilterOperation such that panics are recovered and nice error messages are constructed
func SafeFilterOperation(filterOp etl.FilterOperation) (safeFilterOp etl.FilterOperation) {
	return func(row etl.Row) (keep bool, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered("Filter", r, describe("Row", row))
			} else if err != nil {
				err = &OperationError{Op: "Filter", Rows: describe("Row", row), Err: err}
			}
		}()
		keep, err = filterOp(row)
		return
	}
}

// SafeFlatMapOperation wraps a FlatMapOperation such that panics are recovered and nice error messages are constructed
func SafeFlatMapOperation(flatMapOp etl.FlatMapOperation) (safeFlatMapOp etl.FlatMapOperation) {
	return func(row etl.Row, newRow etl.RowFactory) (result []etl.Row, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered("FlatMap", r, describe("Row", row))
			} else if err != nil {
				err = &OperationError{Op: "FlatMap", Rows: describe("Row", row), Err: err}
			}
		}()
		result, err = flatMapOp(row, newRow)
		return
	}
}

// SafeMergeOperation wraps a MergeOperation such that panics are recovered and nice error messages are constructed
func SafeMergeOperation(mergeOp etl.MergeOperation) (safeMergeOp etl.MergeOperation) {
	return func(lrow, rrow etl.Row) (result etl.Row, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered("Merge", r, describe("LRow", lrow)+"\n"+describe("RRow", rrow))
			} else if err != nil {
				err = &OperationError{Op: "Merge", Rows: describe("LRow", lrow) + "\n" + describe("RRow", rrow), Err: err}
			} else if result == nil {
				err = &OperationError{Op: "Merge", Rows: describe("LRow", lrow) + "\n" + describe("RRow", rrow), Err: fmt.Errorf("merge produced no row")}
			}
		}()
		result, err = mergeOp(lrow, rrow)
		return
	}
}
