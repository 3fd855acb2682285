package iterator

import (
	"fmt"
	"testing"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
	"github.com/go-sif/etl/row"
	"github.com/stretchr/testify/require"
)

type failingCloser struct {
	etl.RowIterator
	closes int
}

func (f *failingCloser) Close() error {
	f.closes++
	return fmt.Errorf("close %d failed", f.closes)
}

func TestEmpty(t *testing.T) {
	it := Empty()
	for i := 0; i < 2; i++ {
		_, err := it.Next()
		require.True(t, errors.IsNoMoreRows(err))
	}
	require.Nil(t, it.Close())
}

func TestDrainSlice(t *testing.T) {
	rows := []etl.Row{
		row.CreateRow(row.F("Id", etl.Int(1))),
		row.CreateRow(row.F("Id", etl.Int(2))),
	}
	res, err := Drain(FromSlice(rows))
	require.Nil(t, err)
	require.Len(t, res, 2)
	id, err := res[1].GetInt("Id")
	require.Nil(t, err)
	require.EqualValues(t, 2, id)
}

func TestCloseAll(t *testing.T) {
	a := &failingCloser{RowIterator: Empty()}
	b := &failingCloser{RowIterator: Empty()}
	err := CloseAll(a, nil, b)
	require.NotNil(t, err)
	require.Equal(t, 1, a.closes)
	require.Equal(t, 1, b.closes)
	require.Nil(t, CloseAll(Empty()))
}

func TestCloser(t *testing.T) {
	var c Closer
	calls := 0
	release := func() error {
		calls++
		return nil
	}
	require.False(t, c.IsClosed())
	require.Nil(t, c.Close(release))
	require.Nil(t, c.Close(release))
	require.True(t, c.IsClosed())
	require.Equal(t, 1, calls)
}
