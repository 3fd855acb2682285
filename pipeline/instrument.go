package pipeline

import (
	"context"
	"time"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
	"github.com/go-sif/etl/internal/iterator"
	"github.com/go-sif/etl/logging"
	"github.com/prometheus/client_golang/prometheus"
)

// instrumentedIterator sits on the boundary after a Stage. It checks for cancellation
// before every pull, records statistics, and attributes errors to the Stage.
type instrumentedIterator struct {
	ctx      context.Context
	pipeline *Pipeline
	index    int
	name     string
	input    etl.RowIterator
	rows     prometheus.Counter
	trace    bool
	closer   iterator.Closer
}

func (p *Pipeline) instrument(ctx context.Context, index int, name string, it etl.RowIterator) etl.RowIterator {
	return &instrumentedIterator{
		ctx:      ctx,
		pipeline: p,
		index:    index,
		name:     name,
		input:    it,
		rows:     p.metrics.StageRows.WithLabelValues(p.conf.Name, name),
		trace:    p.logger.Enabled(ctx, logging.TraceLevel),
	}
}

func (it *instrumentedIterator) Next() (etl.Row, error) {
	if it.closer.IsClosed() {
		return nil, errors.NoMoreRowsError{}
	}
	if err := it.ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	r, err := it.input.Next()
	it.pipeline.stats.EndPull(it.index, start, err == nil)
	if err != nil {
		return nil, iterator.Attribute(it.name, it.index, err)
	}
	it.rows.Inc()
	if it.trace {
		it.pipeline.logger.Log(it.ctx, logging.TraceLevel, "pulled row", "stage", it.name, "row", r.ToString())
	}
	return r, nil
}

func (it *instrumentedIterator) Close() error {
	return it.closer.Close(it.input.Close)
}
