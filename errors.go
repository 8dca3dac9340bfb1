package csvtable

import (
	"errors"
	"fmt"
	"strings"
)

// Standard error messages and error creation functions for consistency
var (
	// ErrConversion indicates that a cell could not be converted to the type
	// already fixed for its column
	ErrConversion = errors.New("csvtable: conversion failed")

	// ErrInvalidSeparator indicates a separator that cannot delimit fields
	ErrInvalidSeparator = errors.New("csvtable: invalid separator")

	// ErrInvalidCandidate indicates a malformed candidate type
	ErrInvalidCandidate = errors.New("csvtable: invalid candidate type")

	// ErrUnsupportedFormat indicates an unsupported file format
	ErrUnsupportedFormat = errors.New("csvtable: unsupported file format")

	// ErrFileNotFound indicates file not found
	ErrFileNotFound = errors.New("csvtable: file not found")

	// ErrNilReader indicates that a nil io.Reader was passed
	ErrNilReader = errors.New("csvtable: reader cannot be nil")

	// ErrEmptyTable indicates that an exporter was handed a nil table or a table without columns
	ErrEmptyTable = errors.New("csvtable: table has no columns")
)

// ConversionError describes a cell that failed conversion after its column
// type was committed. It is returned by the typed parse functions and aborts
// the whole parse.
type ConversionError struct {
	Value  string // Raw cell text
	Type   string // Destination type name
	Column string // Column name
	Row    int    // 1-based data row number
	Err    error  // Underlying parse error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("%s: value %q cannot be converted to %s (column %q, row %d)",
		ErrConversion.Error(), e.Value, e.Type, e.Column, e.Row)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrConversion.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	FilePath  string
	Details   string
}

// newErrorContext creates a new error context
func newErrorContext(operation, filePath string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
		FilePath:  filePath,
	}
}

// withDetails adds details to the error context
func (ec *ErrorContext) withDetails(details string) *ErrorContext {
	ec.Details = details
	return ec
}

// Error creates a formatted error with context
func (ec *ErrorContext) Error(baseErr error) error {
	var parts []string
	parts = append(parts, fmt.Sprintf("csvtable: %s failed", ec.Operation))

	if ec.FilePath != "" {
		parts = append(parts, "file: "+ec.FilePath)
	}

	if ec.Details != "" {
		parts = append(parts, "details: "+ec.Details)
	}

	context := strings.Join(parts, ", ")
	if baseErr != nil {
		return fmt.Errorf("%s: %w", context, baseErr)
	}
	return fmt.Errorf("%s", context)
}
