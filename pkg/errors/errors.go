package errors

import (
	"fmt"
	"strings"
)

// InvalidArgumentError reports malformed input such as an unparsable module id.
type InvalidArgumentError struct {
	Argument string
	Message  string
	Err      error
}

// NewInvalidArgumentError constructs an InvalidArgumentError.
func NewInvalidArgumentError(argument, message string) error {
	return &InvalidArgumentError{Argument: argument, Message: message}
}

func (e *InvalidArgumentError) Error() string {
	if e == nil {
		return ""
	}
	if e.Argument != "" {
		return fmt.Sprintf("invalid argument %q: %s", e.Argument, e.Message)
	}
	return fmt.Sprintf("invalid argument: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *InvalidArgumentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NullHandleError is returned when an operation receives a nil module handle.
type NullHandleError struct {
	Message string
}

// NewNullHandleError constructs a NullHandleError.
func NewNullHandleError(message string) error {
	return &NullHandleError{Message: message}
}

func (e *NullHandleError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("null handle: %s", e.Message)
}

// OutOfRangeError reports an index outside of a collection.
type OutOfRangeError struct {
	What  string
	Index int
	Size  int
}

// NewOutOfRangeError constructs an OutOfRangeError.
func NewOutOfRangeError(what string, index, size int) error {
	return &OutOfRangeError{What: what, Index: index, Size: size}
}

func (e *OutOfRangeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s index %d out of range [0,%d)", e.What, e.Index, e.Size)
}

// CycleError signals that a network cannot be scheduled because its
// dependency graph contains a cycle. Path lists the module ids along the
// cycle with the first id repeated at the end.
type CycleError struct {
	Path  []string
	Cause error
}

// NewCycleError constructs a CycleError.
func NewCycleError(path []string, cause error) error {
	return &CycleError{Path: append([]string(nil), path...), Cause: cause}
}

func (e *CycleError) Error() string {
	if e == nil {
		return ""
	}
	msg := "network has cycles"
	if len(e.Path) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, strings.Join(e.Path, " -> "))
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap exposes the underlying cause.
func (e *CycleError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// ExecutionError represents a runtime failure while executing a module.
type ExecutionError struct {
	ModuleID string
	Err      error
}

// NewExecutionError constructs an ExecutionError.
func NewExecutionError(moduleID string, err error) error {
	return &ExecutionError{ModuleID: moduleID, Err: err}
}

func (e *ExecutionError) Error() string {
	if e == nil {
		return ""
	}
	if e.ModuleID != "" {
		return fmt.Sprintf("execution error on module %s: %v", e.ModuleID, e.Err)
	}
	return fmt.Sprintf("execution error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *ExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures description validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
