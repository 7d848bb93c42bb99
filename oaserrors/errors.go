package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates the input document could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrUnhandledSchema indicates a schema matched no classification rule.
	ErrUnhandledSchema = errors.New("unhandled schema")

	// ErrShapeMismatch indicates a known schema no longer has its expected shape.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrValidation indicates a value does not satisfy a schema.
	ErrValidation = errors.New("validation error")
)

// ParseError represents a failure to read or decode an OpenAPI document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// UnhandledSchemaError is returned when the schema classifier reaches its
// fallback. Schema carries the offending input so it can be reported verbatim.
type UnhandledSchemaError struct {
	// Path locates the schema, e.g. "Widget.properties.count"
	Path string
	// Schema is the schema value that could not be classified
	Schema any
}

// Error returns a human-readable error message.
func (e *UnhandledSchemaError) Error() string {
	msg := "unhandled schema"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return msg + fmt.Sprintf(": %+v", e.Schema)
}

// Is reports whether target matches this error type.
func (e *UnhandledSchemaError) Is(target error) bool {
	return target == ErrUnhandledSchema
}

// ShapeMismatchError is returned when a schema that has a hand-written
// counterpart in the generated output differs from the shape it must have.
type ShapeMismatchError struct {
	// Name is the schema name
	Name string
	// Message describes the difference
	Message string
}

// Error returns a human-readable error message.
func (e *ShapeMismatchError) Error() string {
	msg := "shape mismatch"
	if e.Name != "" {
		msg += " for " + e.Name
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// ValidationIssue is a single reason a value was rejected.
type ValidationIssue struct {
	// Path locates the offending value, e.g. "/items/0/id" ("" is the root)
	Path string
	// Code classifies the failure, e.g. "required" or "too_big"
	Code string
	// Message describes the failure
	Message string
}

func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationError is returned when a value does not satisfy a named schema.
type ValidationError struct {
	// Schema is the name of the schema the value was checked against
	Schema string
	// Issues lists every failure found, in traversal order
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Schema != "" {
		msg += " for " + e.Schema
	}
	switch len(e.Issues) {
	case 0:
		return msg
	case 1:
		return msg + ": " + e.Issues[0].String()
	}
	return fmt.Sprintf("%s: %s (and %d more)", msg, e.Issues[0], len(e.Issues)-1)
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
