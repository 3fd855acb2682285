package etl

import (
	"math"
	"testing"
	"time"

	"github.com/go-sif/etl/errors"
	"github.com/stretchr/testify/require"
)

func TestValueEquality(t *testing.T) {
	require.True(t, Int(1).Equal(Int(1)))
	require.False(t, Int(1).Equal(Int(2)))
	require.False(t, Int(1).Equal(Float(1)))
	require.True(t, String("ab").Equal(String("ab")))
	require.True(t, Bytes([]byte{1}).Equal(Bytes([]byte{1})))
	require.True(t, Bool(true).Equal(Bool(true)))
	require.False(t, Bool(true).Equal(Int(1)))
	// nulls and NaNs never compare equal
	require.False(t, Null().Equal(Null()))
	require.False(t, Float(math.NaN()).Equal(Float(math.NaN())))
}

func TestValueAccessors(t *testing.T) {
	_, err := String("x").AsInt()
	require.Equal(t, errors.TypeMismatchError{Expected: "int", Actual: "string"}, err)
	_, err = Null().AsString()
	require.IsType(t, errors.NilValueError{}, err)
	f, err := Int(3).AsFloat()
	require.Nil(t, err)
	require.Equal(t, 3.0, f)
	b, err := Bool(true).AsBool()
	require.Nil(t, err)
	require.True(t, b)
}

func TestValueOf(t *testing.T) {
	v, err := ValueOf(uint16(12))
	require.Nil(t, err)
	require.Equal(t, IntKind, v.Kind())
	v, err = ValueOf(nil)
	require.Nil(t, err)
	require.True(t, v.IsNull())
	ts := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	v, err = ValueOf(ts)
	require.Nil(t, err)
	require.Equal(t, "2020-01-02T03:04:05Z", v.Text())
	_, err = ValueOf(uint64(math.MaxUint64))
	require.IsType(t, errors.TypeMismatchError{}, err)
	_, err = ValueOf(map[string]int{})
	require.IsType(t, errors.TypeMismatchError{}, err)
}

func TestValueCloneBytes(t *testing.T) {
	original := Bytes([]byte{1, 2})
	clone := original.Clone()
	raw := clone.Interface().([]byte)
	raw[0] = 5
	got, err := original.AsBytes()
	require.Nil(t, err)
	require.Equal(t, []byte{1, 2}, got)
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{NullKind, IntKind, FloatKind, StringKind, BoolKind, BytesKind} {
		parsed, err := ParseKind(k.String())
		require.Nil(t, err)
		require.Equal(t, k, parsed)
	}
	_, err := ParseKind("decimal")
	require.NotNil(t, err)
}

func TestValueToString(t *testing.T) {
	require.Equal(t, "nil", Null().ToString())
	require.Equal(t, `"ab"`, String("ab").ToString())
	require.Equal(t, "1.5", Float(1.5).ToString())
	require.Equal(t, "[010203040506... 2 more]", Bytes([]byte{1, 2, 3, 4, 5, 6, 7, 8}).ToString())
}
