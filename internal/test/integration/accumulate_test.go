package integration

import (
	"context"
	"testing"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/accumulators"
	"github.com/go-sif/etl/datasource/memory"
	"github.com/go-sif/etl/datasource/parser/jsonl"
	"github.com/go-sif/etl/operations/util"
	etltest "github.com/go-sif/etl/testing"
	"github.com/stretchr/testify/require"
)

func TestAccumulate(t *testing.T) {
	numRows := 100
	sum := 0
	for i := 0; i < numRows; i++ {
		sum += i
	}
	counter := accumulators.Counter()
	adder := accumulators.Adder("col1")
	source := memory.CreateRawSource("numbers", createCol1Data(numRows), jsonl.CreateParser(&jsonl.ParserConf{}), createCol1Schema(t, etl.IntKind))
	res, err := etltest.RunStages(context.Background(),
		source,
		util.Accumulate("accumulate", accumulators.Compose(counter, adder)),
	)
	require.Nil(t, err)
	// accumulation passes Rows through untouched
	require.Len(t, res.Rows, numRows)
	require.EqualValues(t, numRows, counter.GetCount())
	require.EqualValues(t, sum, adder.GetSum())
}
