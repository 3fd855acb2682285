// Package metrics defines the prometheus collectors exported by Pipelines
package metrics

import (
	stderrors "errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors shared by every Pipeline registered with the same Registerer
type Metrics struct {
	StageRows        *prometheus.CounterVec
	PipelineRuns     *prometheus.CounterVec
	PipelineDuration *prometheus.HistogramVec
}

// Create builds the collectors and registers them with reg. Collectors which are already
// registered are reused. A nil Registerer yields working, unregistered collectors.
func Create(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		StageRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "etl_stage_rows_total",
			Help: "The total number of rows produced by a pipeline stage",
		}, []string{"pipeline", "stage"}),
		PipelineRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "etl_pipeline_runs_total",
			Help: "The total number of pipeline runs, by result",
		}, []string{"pipeline", "result"}),
		PipelineDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "etl_pipeline_duration_seconds",
			Help:    "Histogram of pipeline run durations in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 60, 300},
		}, []string{"pipeline"}),
	}
	if reg == nil {
		return m, nil
	}
	var err error
	if m.StageRows, err = register(reg, m.StageRows); err != nil {
		return nil, err
	}
	if m.PipelineRuns, err = register(reg, m.PipelineRuns); err != nil {
		return nil, err
	}
	if m.PipelineDuration, err = register(reg, m.PipelineDuration); err != nil {
		return nil, err
	}
	return m, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if stderrors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing, nil
		}
	}
	return c, err
}
