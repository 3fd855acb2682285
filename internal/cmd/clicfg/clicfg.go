// Package clicfg copies parsed command line flags into tagged config structs
package clicfg

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/urfave/cli/v3"
)

// ErrCannotParseFlags is returned when flags cannot be copied into a config struct
var ErrCannotParseFlags = errors.New("cannot parse flags")

// ParseFlags sets every field of the struct pointed to by s which carries a `flag:"name"`
// tag to the value of the named flag. Supported field types are string, bool, the
// signed integers and []string.
func ParseFlags(c *cli.Command, s any) error {
	v := reflect.ValueOf(s)
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("%w: expected pointer to struct, got %T", ErrCannotParseFlags, s)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("%w: expected pointer to struct, got pointer to %s", ErrCannotParseFlags, v.Kind())
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)
		flagName := field.Tag.Get("flag")
		if flagName == "" || !fieldValue.CanSet() {
			continue
		}

		switch field.Type.Kind() {
		case reflect.String:
			fieldValue.SetString(c.String(flagName))
		case reflect.Bool:
			fieldValue.SetBool(c.Bool(flagName))
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			fieldValue.SetInt(int64(c.Int(flagName)))
		case reflect.Slice:
			if field.Type.Elem().Kind() != reflect.String {
				return fmt.Errorf("%w: unsupported slice type for field %s: %s", ErrCannotParseFlags, field.Name, field.Type)
			}
			fieldValue.Set(reflect.ValueOf(append([]string(nil), c.StringSlice(flagName)...)))
		default:
			return fmt.Errorf("%w: unsupported type for field %s: %s", ErrCannotParseFlags, field.Name, field.Type)
		}
	}
	return nil
}
