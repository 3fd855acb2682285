package integration

import (
	"context"
	"strings"
	"testing"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/datasource/memory"
	"github.com/go-sif/etl/datasource/parser/jsonl"
	ops "github.com/go-sif/etl/operations/transform"
	etltest "github.com/go-sif/etl/testing"
	"github.com/stretchr/testify/require"
)

func TestFlatMap(t *testing.T) {
	data := make([][]byte, 10)
	for i := range data {
		data[i] = []byte("{\"col1\": \"abc\"}")
	}
	source := memory.CreateRawSource("letters", data, jsonl.CreateParser(&jsonl.ParserConf{}), createCol1Schema(t, etl.StringKind))
	res, err := etltest.RunStages(context.Background(),
		source,
		ops.FlatMap("split", func(row etl.Row, newRow etl.RowFactory) ([]etl.Row, error) {
			col1, err := row.GetString("col1")
			if err != nil {
				return nil, err
			}
			out := make([]etl.Row, 0, len(col1))
			for _, c := range col1 {
				r := newRow()
				r.SetString("res", strings.ToUpper(string(c)))
				out = append(out, r)
			}
			return out, nil
		}),
		ops.RemoveField("drop", "col1"),
	)
	require.Nil(t, err)
	require.Len(t, res.Rows, 30)
	for i, r := range res.Rows {
		val, err := r.GetString("res")
		require.Nil(t, err)
		require.Equal(t, string("ABC"[i%3]), val)
		require.False(t, r.Has("col1"))
	}
	require.Equal(t, []int64{10, 30, 30, 30}, res.Stats.GetNumRowsProcessed())
}
