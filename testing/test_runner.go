// Package testing contains helpers for running Stages end to end in tests
package testing

import (
	"context"
	"fmt"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/logging"
	"github.com/go-sif/etl/operations/util"
	"github.com/go-sif/etl/pipeline"
)

// Result holds the output of a test Pipeline
type Result struct {
	Rows  []etl.Row
	Stats etl.RuntimeStatistics
	ID    string
}

// RunStages runs the given Stages in a fresh Pipeline, collecting every Row produced
// by the final Stage. Panics escaping the Pipeline are returned as errors.
func RunStages(ctx context.Context, stages ...etl.Stage) (result *Result, err error) {
	// handle panics
	defer func() {
		if r := recover(); r != nil {
			if anErr, ok := r.(error); ok {
				err = anErr
			} else {
				err = fmt.Errorf("panic: %v", r)
			}
			result = nil
		}
	}()

	p, err := pipeline.Create(&pipeline.Conf{Name: "test", Logger: logging.Discard()})
	if err != nil {
		return nil, err
	}
	collector := util.Collect("test-collect", 0)
	if err := p.Register(append(append([]etl.Stage{}, stages...), collector)...); err != nil {
		return nil, err
	}
	result = &Result{ID: p.ID()}
	err = p.Execute(ctx)
	result.Rows = collector.Rows()
	result.Stats = p.Stats()
	return result, err
}
