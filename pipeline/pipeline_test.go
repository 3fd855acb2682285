package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/datasource/memory"
	"github.com/go-sif/etl/datasource/memorystream"
	"github.com/go-sif/etl/errors"
	"github.com/go-sif/etl/logging"
	"github.com/go-sif/etl/operations/join"
	"github.com/go-sif/etl/operations/transform"
	"github.com/go-sif/etl/operations/util"
	"github.com/go-sif/etl/row"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func word(id int64, w string) etl.Row {
	return row.CreateRow(row.F("Id", etl.Int(id)), row.F("AWord", etl.String(w)))
}

func createTestPipeline(t *testing.T, reg prometheus.Registerer) *Pipeline {
	p, err := Create(&Conf{Name: "test", Logger: logging.Discard(), Registerer: reg})
	require.Nil(t, err)
	return p
}

func words(t *testing.T, rows []etl.Row) []string {
	res := make([]string, len(rows))
	for i, r := range rows {
		w, err := r.GetString("AWord")
		require.Nil(t, err)
		res[i] = w
	}
	return res
}

func TestWordJoinPipeline(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := createTestPipeline(t, reg)
	left := memory.CreateSource("left", []etl.Row{word(1, "ab"), word(2, "cd")})
	right := memory.CreateSource("right", []etl.Row{word(1, "ef"), word(1, "gh")})
	joined, err := join.Create(&join.Conf{
		Name:       "join",
		Left:       left,
		Right:      right,
		Conditions: []join.Condition{join.On("Id", "Id")},
		Mode:       join.LeftOuter,
		Merge:      join.ConcatField("AWord", " "),
	})
	require.Nil(t, err)
	sink := memory.CreateSink("out")
	require.Nil(t, p.Register(
		joined,
		transform.WithField("length", "Length", func(r etl.Row) (etl.Value, error) {
			w, err := r.GetString("AWord")
			return etl.Int(int64(len(w))), err
		}),
		util.Write("write", sink),
	))
	require.Nil(t, p.Execute(context.Background()))
	require.Equal(t, []string{"ab ef", "ab gh", "cd "}, words(t, sink.Rows()))
	require.True(t, sink.IsClosed())
	require.Equal(t, 0, left.OpenIterators())
	require.Equal(t, 0, right.OpenIterators())

	stats := p.Stats()
	require.Equal(t, []int64{3, 3, 0}, stats.GetNumRowsProcessed())
	require.Len(t, stats.GetStagePullTimes(), 3)
	require.False(t, stats.GetStartTime().IsZero())
	require.Greater(t, stats.GetRuntime(), time.Duration(0))

	require.Equal(t, 3.0, testutil.ToFloat64(p.metrics.StageRows.WithLabelValues("test", "join")))
	require.Equal(t, 1.0, testutil.ToFloat64(p.metrics.PipelineRuns.WithLabelValues("test", "success")))
}

func TestFailFastOnThirdRow(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := createTestPipeline(t, reg)
	rows := make([]etl.Row, 5)
	for i := range rows {
		rows[i] = word(int64(i), fmt.Sprintf("w%d", i))
	}
	rows[2] = row.CreateRow(row.F("Id", etl.Int(2)))
	source := memory.CreateSource("source", rows)
	sink := memory.CreateSink("out")
	require.Nil(t, p.Register(
		source,
		transform.Map("shout", func(r etl.Row) error {
			w, err := r.GetString("AWord")
			if err != nil {
				return err
			}
			r.SetString("AWord", w+"!")
			return nil
		}),
		util.Write("write", sink),
	))
	err := p.Execute(context.Background())
	require.NotNil(t, err)
	var stageErr errors.StageError
	require.True(t, stderrors.As(err, &stageErr))
	require.Equal(t, "shout", stageErr.Stage)
	require.Equal(t, 1, stageErr.Index)
	require.EqualValues(t, 2, stageErr.RowIndex)
	var notFound errors.FieldNotFoundError
	require.True(t, stderrors.As(err, &notFound))
	require.Equal(t, "AWord", notFound.Field)

	// earlier writes happened, nothing after the failure did
	require.Equal(t, []string{"w0!", "w1!"}, words(t, sink.Rows()))
	require.True(t, sink.IsClosed())
	require.Equal(t, 0, source.OpenIterators())
	require.Equal(t, 1.0, testutil.ToFloat64(p.metrics.PipelineRuns.WithLabelValues("test", "failure")))
}

func TestSingleUse(t *testing.T) {
	p := createTestPipeline(t, nil)
	require.Nil(t, p.Register(memory.CreateSource("source", []etl.Row{word(1, "ab")})))
	require.Nil(t, p.Execute(context.Background()))
	err := p.Execute(context.Background())
	require.IsType(t, errors.PipelineStateError{}, err)
	err = p.Register(transform.RemoveField("drop", "AWord"))
	require.IsType(t, errors.PipelineStateError{}, err)
}

func TestRegisterValidation(t *testing.T) {
	p := createTestPipeline(t, nil)
	require.Nil(t, p.Register(memory.CreateSource("source", nil)))
	require.IsType(t, errors.ConfigError{}, p.Register(memory.CreateSource("source", nil)))
	require.IsType(t, errors.ConfigError{}, p.Register(nil))

	empty := createTestPipeline(t, nil)
	require.IsType(t, errors.ConfigError{}, empty.Execute(context.Background()))
}

func TestEarlyStopReleasesSource(t *testing.T) {
	p := createTestPipeline(t, nil)
	generated := 0
	source := memorystream.CreateSource("stream", func() []byte {
		generated++
		return []byte("a\nb\nc")
	}, lineParser{}, nil)
	collector := util.Collect("collect", 0)
	require.Nil(t, p.Register(source, util.Limit("limit", 4), collector))
	require.Nil(t, p.Execute(context.Background()))
	require.Len(t, collector.Rows(), 4)
	require.Equal(t, 2, generated)
}

func TestCancellation(t *testing.T) {
	p := createTestPipeline(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	rows := make([]etl.Row, 10)
	for i := range rows {
		rows[i] = word(int64(i), "w")
	}
	source := memory.CreateSource("source", rows)
	pulled := 0
	require.Nil(t, p.Register(source, transform.Filter("cancel", func(r etl.Row) (bool, error) {
		pulled++
		if pulled == 3 {
			cancel()
		}
		return true, nil
	})))
	err := p.Execute(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 3, pulled)
	require.Equal(t, 0, source.OpenIterators())
	require.Equal(t, 1.0, testutil.ToFloat64(p.metrics.PipelineRuns.WithLabelValues("test", "cancelled")))
}

type failingSink struct {
	closeErr error
}

func (f *failingSink) Name() string {
	return "failing"
}

func (f *failingSink) Write(ctx context.Context, r etl.Row) error {
	return nil
}

func (f *failingSink) Close() error {
	return f.closeErr
}

func TestCloseErrorsSurfaceOnSuccess(t *testing.T) {
	p := createTestPipeline(t, nil)
	require.Nil(t, p.Register(
		memory.CreateSource("source", []etl.Row{word(1, "ab")}),
		util.Write("write", &failingSink{closeErr: stderrors.New("flush failed")}),
	))
	err := p.Execute(context.Background())
	var sinkErr errors.SinkIOError
	require.True(t, stderrors.As(err, &sinkErr))
	require.Contains(t, err.Error(), "flush failed")
}

func TestExecuteErrorsAreAttributed(t *testing.T) {
	p := createTestPipeline(t, nil)
	source := memory.CreateSource("source", []etl.Row{word(1, "ab")})
	require.Nil(t, p.Register(source, util.Limit("limit", -1)))
	err := p.Execute(context.Background())
	var stageErr errors.StageError
	require.True(t, stderrors.As(err, &stageErr))
	require.Equal(t, "limit", stageErr.Stage)
	require.Equal(t, 1, stageErr.Index)
	require.True(t, stderrors.As(err, &errors.ConfigError{}))
	require.Equal(t, 0, source.OpenIterators())
}
