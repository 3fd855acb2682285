package join

import (
	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
	"github.com/go-sif/etl/row"
)

// LeftWins merges two Rows, keeping the left Value wherever both Rows have a field
func LeftWins(leftRow etl.Row, rightRow etl.Row) (etl.Row, error) {
	out := leftRow.Clone()
	if rightRow == nil {
		return out, nil
	}
	err := rightRow.ForEachField(func(name string, value etl.Value) error {
		if !out.Has(name) {
			out.Set(name, value)
		}
		return nil
	})
	return out, err
}

// RightWins merges two Rows, keeping the right Value wherever both Rows have a field
func RightWins(leftRow etl.Row, rightRow etl.Row) (etl.Row, error) {
	out := leftRow.Clone()
	if rightRow == nil {
		return out, nil
	}
	err := rightRow.ForEachField(func(name string, value etl.Value) error {
		out.Set(name, value)
		return nil
	})
	return out, err
}

// Prefixed returns a MergeOperation which keeps every field of both Rows, renaming them
// with the given prefixes. When the right Row is absent, only left fields are produced.
func Prefixed(leftPrefix string, rightPrefix string) etl.MergeOperation {
	return func(leftRow etl.Row, rightRow etl.Row) (etl.Row, error) {
		out := row.CreateRow()
		leftRow.ForEachField(func(name string, value etl.Value) error {
			out.Set(leftPrefix+name, value)
			return nil
		})
		if rightRow == nil {
			return out, nil
		}
		err := rightRow.ForEachField(func(name string, value etl.Value) error {
			if out.Has(rightPrefix + name) {
				return errors.DuplicateFieldError{Field: rightPrefix + name}
			}
			out.Set(rightPrefix+name, value)
			return nil
		})
		return out, err
	}
}

// ConcatField returns a MergeOperation which starts from a copy of the left Row and
// joins the string field of both Rows with sep. An absent right Row contributes an empty string.
func ConcatField(field string, sep string) etl.MergeOperation {
	return func(leftRow etl.Row, rightRow etl.Row) (etl.Row, error) {
		l, err := leftRow.GetString(field)
		if err != nil {
			return nil, err
		}
		r := ""
		if rightRow != nil {
			r, err = rightRow.GetString(field)
			if err != nil {
				return nil, err
			}
		}
		out := leftRow.Clone()
		out.SetString(field, l+sep+r)
		return out, nil
	}
}
