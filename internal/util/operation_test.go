package util

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
	"github.com/go-sif/etl/row"
	"github.com/stretchr/testify/require"
)

func TestSafeMapOperationRecoversPanics(t *testing.T) {
	op := SafeMapOperation(func(r etl.Row) error {
		panic(fmt.Errorf("boom"))
	})
	err := op(row.CreateRow(row.F("Id", etl.Int(1))))
	require.NotNil(t, err)
	var opErr *OperationError
	require.True(t, stderrors.As(err, &opErr))
	require.Equal(t, "Map", opErr.Op)
	require.NotEmpty(t, opErr.Trace)
	require.Contains(t, err.Error(), `"Id": 1`)
}

func TestSafeMapOperationKeepsCause(t *testing.T) {
	op := SafeMapOperation(func(r etl.Row) error {
		_, err := r.GetString("AWord")
		return err
	})
	err := op(row.CreateRow())
	var fnf errors.FieldNotFoundError
	require.True(t, stderrors.As(err, &fnf))
	require.Equal(t, "AWord", fnf.Field)
}

func TestSafeMergeOperation(t *testing.T) {
	op := SafeMergeOperation(func(l, r etl.Row) (etl.Row, error) {
		return nil, nil
	})
	_, err := op(row.CreateRow(), nil)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "RRow: <none>")

	op = SafeMergeOperation(func(l, r etl.Row) (etl.Row, error) {
		panic("no string")
	})
	_, err = op(row.CreateRow(), row.CreateRow())
	require.Contains(t, err.Error(), "Merge Panic: no string")
}

func TestSafeFilterAndFlatMap(t *testing.T) {
	filter := SafeFilterOperation(func(r etl.Row) (bool, error) {
		var m map[string]int
		m["x"] = 1 // nil map write panics
		return true, nil
	})
	_, err := filter(row.CreateRow())
	require.NotNil(t, err)

	flat := SafeFlatMapOperation(func(r etl.Row, newRow etl.RowFactory) ([]etl.Row, error) {
		return []etl.Row{newRow(), newRow()}, nil
	})
	rows, err := flat(row.CreateRow(), row.CreateEmptyRow)
	require.Nil(t, err)
	require.Len(t, rows, 2)
}

func TestFormatMultiError(t *testing.T) {
	require.Equal(t, "a", FormatMultiError([]error{fmt.Errorf("a")}))
	require.Equal(t, "2 errors occurred:\n\t* a\n\t* b", FormatMultiError([]error{fmt.Errorf("a"), fmt.Errorf("b")}))
}
