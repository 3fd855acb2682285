package jsonl

import (
	"fmt"
	"strings"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
	"github.com/go-sif/etl/row"
	"github.com/tidwall/gjson"
)

// parseValue converts a located JSON value into a Value of the given Kind. A NullKind
// column infers its Kind from the JSON.
func parseValue(val gjson.Result, colName string, kind etl.Kind) (etl.Value, error) {
	mismatch := func() (etl.Value, error) {
		return etl.Null(), errors.TypeMismatchError{Field: colName, Expected: kind.String(), Actual: describe(val)}
	}
	switch kind {
	case etl.IntKind:
		if val.Type != gjson.Number || strings.ContainsAny(val.Raw, ".eE") {
			return mismatch()
		}
		return etl.Int(val.Int()), nil
	case etl.FloatKind:
		if val.Type != gjson.Number {
			return mismatch()
		}
		return etl.Float(val.Float()), nil
	case etl.BoolKind:
		if val.Type != gjson.True && val.Type != gjson.False {
			return mismatch()
		}
		return etl.Bool(val.Bool()), nil
	case etl.StringKind:
		if val.Type != gjson.String {
			return mismatch()
		}
		return etl.String(val.Str), nil
	case etl.BytesKind:
		if val.Type != gjson.String {
			return mismatch()
		}
		return etl.Bytes([]byte(val.Str)), nil
	default:
		switch val.Type {
		case gjson.Number:
			if strings.ContainsAny(val.Raw, ".eE") {
				return etl.Float(val.Float()), nil
			}
			return etl.Int(val.Int()), nil
		case gjson.True, gjson.False:
			return etl.Bool(val.Bool()), nil
		case gjson.String:
			return etl.String(val.Str), nil
		default:
			// objects and arrays are kept as raw JSON
			return etl.String(val.Raw), nil
		}
	}
}

func describe(val gjson.Result) string {
	switch val.Type {
	case gjson.Number:
		return "number"
	case gjson.True, gjson.False:
		return "bool"
	case gjson.String:
		return "string"
	default:
		if val.IsArray() {
			return "array"
		}
		return "object"
	}
}

// Parses a line of JSON into a Row, according to a schema. Missing and null values become nulls.
func scanRow(names []string, kinds []etl.Kind, rowString string) (etl.Row, error) {
	if !gjson.Valid(rowString) {
		return nil, fmt.Errorf("invalid JSON: %s", rowString)
	}
	r := row.CreateEmptyRow()
	results := gjson.GetMany(rowString, names...)
	for idx, colName := range names {
		val := results[idx]
		if !val.Exists() || val.Type == gjson.Null {
			r.SetNil(colName)
			continue
		}
		v, err := parseValue(val, colName, kinds[idx])
		if err != nil {
			return nil, err
		}
		r.Set(colName, v)
	}
	return r, nil
}
