package etl

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-sif/etl/errors"
)

// Kind identifies the dynamic type of a Value
type Kind uint8

const (
	// NullKind is the Kind of the null Value
	NullKind Kind = iota
	// IntKind is the Kind of 64-bit signed integer Values
	IntKind
	// FloatKind is the Kind of 64-bit floating point Values
	FloatKind
	// StringKind is the Kind of string Values
	StringKind
	// BoolKind is the Kind of boolean Values
	BoolKind
	// BytesKind is the Kind of opaque binary Values
	BytesKind
)

// String returns the name of this Kind
func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case StringKind:
		return "string"
	case BoolKind:
		return "bool"
	case BytesKind:
		return "bytes"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind translates the name of a Kind back into a Kind
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(name) {
	case "null":
		return NullKind, nil
	case "int", "integer":
		return IntKind, nil
	case "float", "double":
		return FloatKind, nil
	case "string", "str":
		return StringKind, nil
	case "bool", "boolean":
		return BoolKind, nil
	case "bytes", "binary":
		return BytesKind, nil
	default:
		return NullKind, fmt.Errorf("Unknown kind %s", name)
	}
}

// Value is a dynamically typed value stored in a Row. The zero Value is null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    []byte
}

// Null returns the null Value
func Null() Value {
	return Value{}
}

// Int returns an integer Value
func Int(v int64) Value {
	return Value{kind: IntKind, i: v}
}

// Float returns a floating point Value
func Float(v float64) Value {
	return Value{kind: FloatKind, f: v}
}

// String returns a string Value
func String(v string) Value {
	return Value{kind: StringKind, s: v}
}

// Bool returns a boolean Value
func Bool(v bool) Value {
	val := Value{kind: BoolKind}
	if v {
		val.i = 1
	}
	return val
}

// Bytes returns a binary Value holding a copy of v. A nil slice produces an empty (not null) Value.
func Bytes(v []byte) Value {
	return Value{kind: BytesKind, b: append(make([]byte, 0, len(v)), v...)}
}

// ValueOf converts a native Go value into a Value
func ValueOf(v interface{}) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t.Clone(), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint:
		if uint64(t) > 1<<63-1 {
			return Null(), errors.TypeMismatchError{Expected: IntKind.String(), Actual: fmt.Sprintf("%T overflowing int64", v)}
		}
		return Int(int64(t)), nil
	case uint64:
		if t > 1<<63-1 {
			return Null(), errors.TypeMismatchError{Expected: IntKind.String(), Actual: fmt.Sprintf("%T overflowing int64", v)}
		}
		return Int(int64(t)), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case []byte:
		return Bytes(t), nil
	case time.Time:
		return String(t.Format(time.RFC3339Nano)), nil
	default:
		return Null(), errors.TypeMismatchError{Expected: "int, float, string, bool, bytes or nil", Actual: fmt.Sprintf("%T", v)}
	}
}

// Kind returns the Kind of this Value
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull returns true iff this Value is null
func (v Value) IsNull() bool {
	return v.kind == NullKind
}

func (v Value) check(expected Kind) error {
	if v.kind == expected {
		return nil
	}
	if v.kind == NullKind {
		return errors.NilValueError{}
	}
	return errors.TypeMismatchError{Expected: expected.String(), Actual: v.kind.String()}
}

// AsInt returns the integer stored in this Value
func (v Value) AsInt() (int64, error) {
	if err := v.check(IntKind); err != nil {
		return 0, err
	}
	return v.i, nil
}

// AsFloat returns the floating point number stored in this Value. Integers are widened.
func (v Value) AsFloat() (float64, error) {
	if v.kind == IntKind {
		return float64(v.i), nil
	}
	if err := v.check(FloatKind); err != nil {
		return 0, err
	}
	return v.f, nil
}

// AsString returns the string stored in this Value
func (v Value) AsString() (string, error) {
	if err := v.check(StringKind); err != nil {
		return "", err
	}
	return v.s, nil
}

// AsBool returns the boolean stored in this Value
func (v Value) AsBool() (bool, error) {
	if err := v.check(BoolKind); err != nil {
		return false, err
	}
	return v.i != 0, nil
}

// AsBytes returns a copy of the binary data stored in this Value
func (v Value) AsBytes() ([]byte, error) {
	if err := v.check(BytesKind); err != nil {
		return nil, err
	}
	return append(make([]byte, 0, len(v.b)), v.b...), nil
}

// Interface returns this Value as a native Go value (nil, int64, float64, string, bool or []byte)
func (v Value) Interface() interface{} {
	switch v.kind {
	case IntKind:
		return v.i
	case FloatKind:
		return v.f
	case StringKind:
		return v.s
	case BoolKind:
		return v.i != 0
	case BytesKind:
		return append(make([]byte, 0, len(v.b)), v.b...)
	default:
		return nil
	}
}

// Clone returns a copy of this Value which shares no storage with it
func (v Value) Clone() Value {
	if v.kind == BytesKind {
		return Bytes(v.b)
	}
	return v
}

// Equal returns true iff both Values have the same Kind and the same value.
// Null is never equal to anything, including another null.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case IntKind, BoolKind:
		return v.i == other.i
	case FloatKind:
		return v.f == other.f
	case StringKind:
		return v.s == other.s
	case BytesKind:
		return bytes.Equal(v.b, other.b)
	default:
		return false
	}
}

// Text renders this Value as plain text, suitable for delimited output. Null renders as an empty string.
func (v Value) Text() string {
	switch v.kind {
	case IntKind:
		return strconv.FormatInt(v.i, 10)
	case FloatKind:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case StringKind:
		return v.s
	case BoolKind:
		return strconv.FormatBool(v.i != 0)
	case BytesKind:
		return string(v.b)
	default:
		return ""
	}
}

// ToString produces a string representation of this Value, for logging
func (v Value) ToString() string {
	switch v.kind {
	case NullKind:
		return "nil"
	case StringKind:
		return fmt.Sprintf("\"%s\"", v.s)
	case BytesKind:
		var res strings.Builder
		fmt.Fprint(&res, "[")
		for i, b := range v.b {
			// don't print more than 6 entries
			if i > 5 {
				fmt.Fprintf(&res, "... %d more", len(v.b)-i)
				break
			}
			fmt.Fprintf(&res, "%02x", b)
		}
		fmt.Fprint(&res, "]")
		return res.String()
	default:
		return v.Text()
	}
}
