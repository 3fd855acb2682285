package integration

import (
	"fmt"
	"testing"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/schema"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func createWordSchema(t *testing.T) etl.Schema {
	s := schema.CreateSchema()
	_, err := s.CreateColumn("Id", etl.IntKind)
	require.Nil(t, err)
	_, err = s.CreateColumn("AWord", etl.StringKind)
	require.Nil(t, err)
	return s
}

func createCol1Schema(t *testing.T, kind etl.Kind) etl.Schema {
	s := schema.CreateSchema()
	_, err := s.CreateColumn("col1", kind)
	require.Nil(t, err)
	return s
}

// createCol1Data returns one jsonl document per row, batched five rows to a buffer
func createCol1Data(numRows int) [][]byte {
	var data [][]byte
	var batch []byte
	for i := 0; i < numRows; i++ {
		batch = append(batch, []byte(fmt.Sprintf("{\"col1\": %d}\n", i))...)
		if (i+1)%5 == 0 {
			data = append(data, batch)
			batch = nil
		}
	}
	if len(batch) > 0 {
		data = append(data, batch)
	}
	return data
}
