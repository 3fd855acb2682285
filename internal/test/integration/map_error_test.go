package integration

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/datasource/memory"
	"github.com/go-sif/etl/datasource/parser/jsonl"
	"github.com/go-sif/etl/errors"
	ops "github.com/go-sif/etl/operations/transform"
	etltest "github.com/go-sif/etl/testing"
	"github.com/stretchr/testify/require"
)

var errOdd = fmt.Errorf("Odd numbers cause errors")

func TestMapErrors(t *testing.T) {
	source := memory.CreateRawSource("numbers", createCol1Data(10), jsonl.CreateParser(&jsonl.ParserConf{}), createCol1Schema(t, etl.IntKind))
	res, err := etltest.RunStages(context.Background(),
		source,
		ops.Map("odd", func(row etl.Row) error {
			col1, err := row.GetInt("col1")
			if err != nil {
				return err
			}
			// error out for odd numbers
			if col1%2 == 1 {
				return errOdd
			}
			return nil
		}),
	)
	require.NotNil(t, err)
	require.ErrorIs(t, err, errOdd)
	var stageErr errors.StageError
	require.True(t, stderrors.As(err, &stageErr))
	require.Equal(t, "odd", stageErr.Stage)
	require.Equal(t, 1, stageErr.Index)
	require.EqualValues(t, 1, stageErr.RowIndex)
	// execution stops at the first error
	require.Len(t, res.Rows, 1)
	require.Equal(t, 0, source.OpenIterators())
}

func TestMapPanics(t *testing.T) {
	source := memory.CreateRawSource("numbers", createCol1Data(3), jsonl.CreateParser(&jsonl.ParserConf{}), createCol1Schema(t, etl.IntKind))
	_, err := etltest.RunStages(context.Background(),
		source,
		ops.Map("panic", func(row etl.Row) error {
			panic(fmt.Errorf("boom"))
		}),
	)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "boom")
	require.Equal(t, 0, source.OpenIterators())
}
