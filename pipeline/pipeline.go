// Package pipeline executes an ordered list of Stages. Each Stage's output is the next Stage's
// input, and the output of the final Stage is pulled until exhaustion, which forces the
// evaluation of the whole chain exactly once. A Pipeline is single-use.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
	"github.com/go-sif/etl/internal/iterator"
	"github.com/go-sif/etl/internal/metrics"
	"github.com/go-sif/etl/internal/stats"
	iutil "github.com/go-sif/etl/internal/util"
	uuid "github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
)

// Conf configures a Pipeline
type Conf struct {
	Name       string                // The name of the Pipeline, used in logs, errors and metrics. Defaults to "pipeline".
	Logger     *slog.Logger          // Defaults to slog.Default()
	Registerer prometheus.Registerer // If non-nil, Pipeline metrics are registered here
}

type state int

const (
	created state = iota
	running
	finished
)

// Pipeline holds an ordered list of Stages and drives their evaluation
type Pipeline struct {
	conf    *Conf
	id      string
	stages  []etl.Stage
	state   state
	stats   *stats.RunStatistics
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// Create is a factory for Pipelines
func Create(conf *Conf) (*Pipeline, error) {
	if conf == nil {
		conf = &Conf{}
	}
	if conf.Name == "" {
		conf.Name = "pipeline"
	}
	if conf.Logger == nil {
		conf.Logger = slog.Default()
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate run id: %w", err)
	}
	m, err := metrics.Create(conf.Registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	return &Pipeline{
		conf:    conf,
		id:      id.String(),
		stats:   &stats.RunStatistics{},
		metrics: m,
		logger:  conf.Logger.With("pipeline", conf.Name, "run", id.String()),
	}, nil
}

// ID returns the unique id of this Pipeline's run
func (p *Pipeline) ID() string {
	return p.id
}

// Name returns the name of this Pipeline
func (p *Pipeline) Name() string {
	return p.conf.Name
}

// Stats returns statistics about this Pipeline's run
func (p *Pipeline) Stats() etl.RuntimeStatistics {
	return p.stats
}

// Register appends Stages to this Pipeline. Stages may only be registered before Execute
// is called, and each Stage must have a unique name.
func (p *Pipeline) Register(stages ...etl.Stage) error {
	if p.state != created {
		return errors.PipelineStateError{Pipeline: p.conf.Name, Reason: "stages cannot be registered once execution has started"}
	}
	for _, s := range stages {
		if s == nil {
			return errors.ConfigError{Component: p.conf.Name, Reason: "cannot register a nil stage"}
		}
		name := s.Name()
		if slices.ContainsFunc(p.stages, func(other etl.Stage) bool { return other.Name() == name }) {
			return errors.ConfigError{Component: p.conf.Name, Reason: fmt.Sprintf("a stage named %s is already registered", name)}
		}
		p.stages = append(p.stages, s)
	}
	return nil
}

// Execute wires every registered Stage and pulls the final Stage's output until it is exhausted.
// Execution stops at the first error, which is returned attributed to the Stage that raised it.
// Every Stage is closed on every exit path. Errors raised while closing are only returned if
// execution otherwise succeeded.
func (p *Pipeline) Execute(ctx context.Context) (err error) {
	if p.state != created {
		return errors.PipelineStateError{Pipeline: p.conf.Name, Reason: "a pipeline can only be executed once"}
	}
	p.state = running
	defer func() { p.state = finished }()
	if len(p.stages) == 0 {
		return errors.ConfigError{Component: p.conf.Name, Reason: "no stages registered"}
	}

	p.stats.Start(len(p.stages))
	p.logger.Info("starting pipeline", "stages", len(p.stages))
	opened := make([]etl.RowIterator, 0, len(p.stages))
	defer func() {
		p.finish(ctx, opened, &err)
	}()

	current := iterator.Empty()
	for i, s := range p.stages {
		out, err := s.Execute(ctx, current)
		if err != nil {
			// the failed Stage may not have taken ownership of its input
			opened = append(opened, current)
			return iterator.Attribute(s.Name(), i, err)
		}
		current = p.instrument(ctx, i, s.Name(), out)
		opened = append(opened, current)
	}

	for {
		_, err := current.Next()
		if errors.IsNoMoreRows(err) {
			return nil
		} else if err != nil {
			return err
		}
	}
}

// finish closes every opened iterator, terminal first, and records the outcome of the run
func (p *Pipeline) finish(ctx context.Context, opened []etl.RowIterator, runErr *error) {
	var multierr *multierror.Error
	for i := len(opened) - 1; i >= 0; i-- {
		if cerr := opened[i].Close(); cerr != nil {
			multierr = multierror.Append(multierr, cerr)
		}
	}
	p.stats.Finish()
	if multierr != nil {
		multierr.ErrorFormat = iutil.FormatMultiError
		if *runErr == nil {
			*runErr = multierr
		} else {
			p.logger.Warn("failed to close pipeline stages", "error", multierr.Error())
		}
	}

	runtime := p.stats.GetRuntime()
	p.metrics.PipelineDuration.WithLabelValues(p.conf.Name).Observe(runtime.Seconds())
	result := "success"
	switch {
	case *runErr == nil:
		p.logger.Info("finished pipeline", "runtime", runtime, "rows", p.stats.GetNumRowsProcessed())
	case ctx.Err() != nil:
		result = "cancelled"
		p.logger.Warn("pipeline cancelled", "runtime", runtime, "error", *runErr)
	default:
		result = "failure"
		p.logger.Error("pipeline failed", "runtime", runtime, "error", *runErr)
	}
	p.metrics.PipelineRuns.WithLabelValues(p.conf.Name, result).Inc()
}
