package util

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/accumulators"
	"github.com/go-sif/etl/datasource/memory"
	"github.com/go-sif/etl/errors"
	"github.com/go-sif/etl/internal/iterator"
	"github.com/go-sif/etl/row"
	"github.com/stretchr/testify/require"
)

func createTestRows(n int) []etl.Row {
	rows := make([]etl.Row, n)
	for i := 0; i < n; i++ {
		rows[i] = row.CreateRow(row.F("Id", etl.Int(int64(i))), row.F("AWord", etl.String(fmt.Sprintf("w%d", i))))
	}
	return rows
}

func sourceIterator(t *testing.T, source *memory.DataSource) etl.RowIterator {
	it, err := source.Execute(context.Background(), nil)
	require.Nil(t, err)
	return it
}

type failingSink struct {
	failAt  int
	written int
	closed  int
}

func (f *failingSink) Name() string {
	return "failing"
}

func (f *failingSink) Write(ctx context.Context, r etl.Row) error {
	if f.written == f.failAt {
		return stderrors.New("disk full")
	}
	f.written++
	return nil
}

func (f *failingSink) Close() error {
	f.closed++
	return nil
}

func TestWrite(t *testing.T) {
	source := memory.CreateSource("rows", createTestRows(4))
	sink := memory.CreateSink("out")
	it, err := Write("write", sink).Execute(context.Background(), sourceIterator(t, source))
	require.Nil(t, err)
	require.False(t, sink.IsClosed())
	out, err := iterator.Drain(it)
	require.Nil(t, err)
	require.Empty(t, out)
	require.Len(t, sink.Rows(), 4)
	require.True(t, sink.IsClosed())
	require.Equal(t, 0, source.OpenIterators())
}

func TestWriteFailure(t *testing.T) {
	source := memory.CreateSource("rows", createTestRows(4))
	sink := &failingSink{failAt: 2}
	it, err := Write("write", sink).Execute(context.Background(), sourceIterator(t, source))
	require.Nil(t, err)
	_, err = it.Next()
	var sinkErr errors.SinkIOError
	require.True(t, stderrors.As(err, &sinkErr))
	require.Equal(t, "failing", sinkErr.Sink)
	var rowErr errors.RowError
	require.True(t, stderrors.As(err, &rowErr))
	require.EqualValues(t, 2, rowErr.RowIndex)
	require.Nil(t, it.Close())
	require.Nil(t, it.Close())
	require.Equal(t, 1, sink.closed)
	require.Equal(t, 0, source.OpenIterators())
}

func TestLimitClosesInputEarly(t *testing.T) {
	source := memory.CreateSource("rows", createTestRows(10))
	it, err := Limit("limit", 3).Execute(context.Background(), sourceIterator(t, source))
	require.Nil(t, err)
	for i := 0; i < 3; i++ {
		_, err := it.Next()
		require.Nil(t, err)
	}
	require.Equal(t, 1, source.OpenIterators())
	_, err = it.Next()
	require.True(t, errors.IsNoMoreRows(err))
	require.Equal(t, 0, source.OpenIterators())
	require.Nil(t, it.Close())

	_, err = Limit("limit", -1).Execute(context.Background(), nil)
	require.IsType(t, errors.ConfigError{}, err)
}

func TestCollect(t *testing.T) {
	collector := Collect("collect", 2)
	it, err := collector.Execute(context.Background(), iterator.FromSlice(createTestRows(3)))
	require.Nil(t, err)
	out, err := iterator.Drain(it)
	require.Nil(t, err)
	require.Len(t, out, 3)
	require.Len(t, collector.Rows(), 2)
	require.True(t, collector.Truncated())
	// collected rows are copies
	out[0].SetInt("Id", 100)
	id, err := collector.Rows()[0].GetInt("Id")
	require.Nil(t, err)
	require.EqualValues(t, 0, id)
}

func TestAccumulate(t *testing.T) {
	count := accumulators.Counter()
	sum := accumulators.Adder("Id")
	it, err := Accumulate("acc", accumulators.Compose(count, sum)).Execute(context.Background(), iterator.FromSlice(createTestRows(4)))
	require.Nil(t, err)
	out, err := iterator.Drain(it)
	require.Nil(t, err)
	require.Len(t, out, 4)
	require.EqualValues(t, 4, count.GetCount())
	require.Equal(t, 6.0, sum.GetSum())

	it, err = Accumulate("acc", accumulators.Adder("AWord")).Execute(context.Background(), iterator.FromSlice(createTestRows(2)))
	require.Nil(t, err)
	_, err = iterator.Drain(it)
	var rowErr errors.RowError
	require.True(t, stderrors.As(err, &rowErr))
	require.EqualValues(t, 0, rowErr.RowIndex)
	require.True(t, stderrors.As(err, &errors.TypeMismatchError{}))
}
