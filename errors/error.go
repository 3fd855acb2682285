package errors

import (
	stderrors "errors"
	"fmt"
)

// NoMoreRowsError occurs when there are no more Rows in a RowIterator
type NoMoreRowsError struct{}

// Error returns a textual representation of this NoMoreRowsError
func (e NoMoreRowsError) Error() string {
	return "No more rows"
}

// IsNoMoreRows returns true iff err signals the exhaustion of a RowIterator
func IsNoMoreRows(err error) bool {
	var done NoMoreRowsError
	return stderrors.As(err, &done)
}

// FieldNotFoundError occurs when a Row lacks an expected field
type FieldNotFoundError struct{ Field string }

// Error returns a textual representation of this FieldNotFoundError
func (e FieldNotFoundError) Error() string {
	return fmt.Sprintf("Field %s does not exist in row", e.Field)
}

// TypeMismatchError occurs when a value is present but cannot be used as the Kind a Stage expects
type TypeMismatchError struct {
	Field    string
	Expected string
	Actual   string
}

// Error returns a textual representation of this TypeMismatchError
func (e TypeMismatchError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("Expected value of type %s, was %s", e.Expected, e.Actual)
	}
	return fmt.Sprintf("Field %s: expected value of type %s, was %s", e.Field, e.Expected, e.Actual)
}

// NilValueError occurs when a value in a Row is null
type NilValueError struct{ Name string }

// Error returns a textual representation of this NilValueError
func (e NilValueError) Error() string {
	return fmt.Sprintf("Value for field %s is nil", e.Name)
}

// DuplicateFieldError occurs when a field name would appear twice in a Row or Schema
type DuplicateFieldError struct{ Field string }

// Error returns a textual representation of this DuplicateFieldError
func (e DuplicateFieldError) Error() string {
	return fmt.Sprintf("Field %s already exists", e.Field)
}

// JoinKeyError occurs when a join key cannot be projected out of a Row.
// A null key is not an error.
type JoinKeyError struct {
	Field string
	Err   error
}

// Error returns a textual representation of this JoinKeyError
func (e JoinKeyError) Error() string {
	return fmt.Sprintf("Unable to compute join key from field %s: %v", e.Field, e.Err)
}

// Unwrap returns the cause of this JoinKeyError
func (e JoinKeyError) Unwrap() error {
	return e.Err
}

// SourceIOError occurs when a Source cannot open or read its underlying resource
type SourceIOError struct {
	Source string
	Err    error
}

// Error returns a textual representation of this SourceIOError
func (e SourceIOError) Error() string {
	return fmt.Sprintf("Source %s: %v", e.Source, e.Err)
}

// Unwrap returns the cause of this SourceIOError
func (e SourceIOError) Unwrap() error {
	return e.Err
}

// SinkIOError occurs when a Sink fails to write a Row
type SinkIOError struct {
	Sink string
	Err  error
}

// Error returns a textual representation of this SinkIOError
func (e SinkIOError) Error() string {
	return fmt.Sprintf("Sink %s: %v", e.Sink, e.Err)
}

// Unwrap returns the cause of this SinkIOError
func (e SinkIOError) Unwrap() error {
	return e.Err
}

// StageError attributes an error to the Stage (and, where known, the input Row) which raised it.
// Index is the position of the Stage within its Pipeline, or -1 for Stages nested in another Stage.
// RowIndex is -1 when the failure is not tied to a specific Row.
type StageError struct {
	Stage    string
	Index    int
	RowIndex int64
	Err      error
}

// Error returns a textual representation of this StageError
func (e StageError) Error() string {
	stage := e.Stage
	if e.Index >= 0 {
		stage = fmt.Sprintf("%d (%s)", e.Index, e.Stage)
	}
	if e.RowIndex < 0 {
		return fmt.Sprintf("Stage %s failed: %v", stage, e.Err)
	}
	return fmt.Sprintf("Stage %s failed at row %d: %v", stage, e.RowIndex, e.Err)
}

// Unwrap returns the cause of this StageError
func (e StageError) Unwrap() error {
	return e.Err
}

// PipelineStateError occurs when a Pipeline is used in a way its lifecycle does not allow
type PipelineStateError struct {
	Pipeline string
	Reason   string
}

// Error returns a textual representation of this PipelineStateError
func (e PipelineStateError) Error() string {
	return fmt.Sprintf("Pipeline %s: %s", e.Pipeline, e.Reason)
}

// ConfigError occurs when a component is constructed with an invalid configuration
type ConfigError struct {
	Component string
	Reason    string
}

// Error returns a textual representation of this ConfigError
func (e ConfigError) Error() string {
	return fmt.Sprintf("Invalid configuration for %s: %s", e.Component, e.Reason)
}

// RowError attributes an error to the index (counted from 0) of the input Row which triggered it
type RowError struct {
	RowIndex int64
	Err      error
}

// Error returns a textual representation of this RowError
func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.RowIndex, e.Err)
}

// Unwrap returns the cause of this RowError
func (e RowError) Unwrap() error {
	return e.Err
}
