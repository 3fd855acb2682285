package parser

import (
	"testing"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
	"github.com/stretchr/testify/require"
)

func TestParseText(t *testing.T) {
	v, err := ParseText("Id", etl.IntKind, "12")
	require.Nil(t, err)
	require.True(t, etl.Int(12).Equal(v))
	v, err = ParseText("score", etl.FloatKind, "1.5")
	require.Nil(t, err)
	require.True(t, etl.Float(1.5).Equal(v))
	v, err = ParseText("ok", etl.BoolKind, "true")
	require.Nil(t, err)
	require.True(t, etl.Bool(true).Equal(v))
	v, err = ParseText("any", etl.NullKind, "ab")
	require.Nil(t, err)
	require.True(t, etl.String("ab").Equal(v))

	_, err = ParseText("Id", etl.IntKind, "ab")
	require.Equal(t, errors.TypeMismatchError{Field: "Id", Expected: "int", Actual: `"ab"`}, err)
}
