package transform

import (
	"github.com/go-sif/etl"
	iutil "github.com/go-sif/etl/internal/util"
)

// FlatMap transforms a Row, potentially producing zero or many new Rows
func FlatMap(name string, fn etl.FlatMapOperation) etl.Stage {
	return &transformStage{
		name: name,
		fn:   kernel(iutil.SafeFlatMapOperation(fn)),
	}
}
