// Package parser contains helpers shared by DataSourceParsers
package parser

import (
	"fmt"
	"strconv"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
)

// ParseText converts the textual representation of a field into a Value of the given Kind.
// A NullKind column keeps the text as a String.
func ParseText(field string, kind etl.Kind, text string) (etl.Value, error) {
	mismatch := func() (etl.Value, error) {
		return etl.Null(), errors.TypeMismatchError{Field: field, Expected: kind.String(), Actual: fmt.Sprintf("%q", text)}
	}
	switch kind {
	case etl.IntKind:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return mismatch()
		}
		return etl.Int(i), nil
	case etl.FloatKind:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return mismatch()
		}
		return etl.Float(f), nil
	case etl.BoolKind:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return mismatch()
		}
		return etl.Bool(b), nil
	case etl.BytesKind:
		return etl.Bytes([]byte(text)), nil
	default:
		return etl.String(text), nil
	}
}
