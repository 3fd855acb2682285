package transform

import (
	"github.com/go-sif/etl"
	iutil "github.com/go-sif/etl/internal/util"
)

// Filter passes through the Rows for which fn returns true, unchanged, and drops the rest
func Filter(name string, fn etl.FilterOperation) etl.Stage {
	safe := iutil.SafeFilterOperation(fn)
	return &transformStage{
		name: name,
		fn: func(r etl.Row, newRow etl.RowFactory) ([]etl.Row, error) {
			keep, err := safe(r)
			if err != nil {
				return nil, err
			}
			if !keep {
				return nil, nil
			}
			return []etl.Row{r}, nil
		},
	}
}
