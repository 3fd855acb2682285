package transform

import (
	"github.com/go-sif/etl"
	iutil "github.com/go-sif/etl/internal/util"
)

// Map transforms a copy of each Row. The input Row is never modified.
func Map(name string, fn etl.MapOperation) etl.Stage {
	safe := iutil.SafeMapOperation(fn)
	return &transformStage{
		name: name,
		fn: func(r etl.Row, newRow etl.RowFactory) ([]etl.Row, error) {
			out := r.Clone()
			if err := safe(out); err != nil {
				return nil, err
			}
			return []etl.Row{out}, nil
		},
	}
}
