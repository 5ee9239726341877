// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package converr provides the error taxonomy for pheno-convert.
//
// Every failure of an invocation is one of four categories and each category
// matches a sentinel through errors.Is:
//
//   - UsageError: malformed flag usage (unknown flag, bad value). Exit 2.
//   - ValidationError: well-formed but invalid request (no input, missing
//     REDCap dictionary, missing output directory). Exit 1.
//   - ConversionError: the engine cannot perform the operation (unsupported
//     pair, missing or malformed input, engine failure). Exit 1.
//   - IOError: the output document cannot be written. Exit 1.
//
// Use ExitCode to map any error chain to a process exit status.
package converr

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	ErrUsage      = errors.New("usage error")
	ErrValidation = errors.New("validation error")
	ErrConversion = errors.New("conversion error")
	ErrIO         = errors.New("i/o error")
)

// Process exit statuses.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// UsageError reports malformed command-line usage.
type UsageError struct {
	Message string
	Cause   error
}

func (e *UsageError) Error() string {
	msg := "usage error"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *UsageError) Unwrap() error { return e.Cause }

// Is reports whether target matches this error type.
func (e *UsageError) Is(target error) bool { return target == ErrUsage }

// ValidationError reports a syntactically valid but semantically invalid
// request.
type ValidationError struct {
	// Field is the flag or request field at fault (e.g. "rcd", "out-dir").
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Field != "" {
		msg += " (" + e.Field + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ConversionError reports that a conversion operation could not be performed.
type ConversionError struct {
	// Operation is the resolved operation name, e.g. "phenopacket2beacon".
	Operation string
	Message   string
	Cause     error
}

func (e *ConversionError) Error() string {
	msg := "conversion error"
	if e.Operation != "" {
		msg += " in " + e.Operation
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Cause }

// Is reports whether target matches this error type.
func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

// IOError reports a failure persisting the output document.
type IOError struct {
	Path  string
	Op    string
	Cause error
}

func (e *IOError) Error() string {
	msg := "i/o error"
	if e.Op != "" {
		msg += " " + e.Op
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *IOError) Unwrap() error { return e.Cause }

// Is reports whether target matches this error type.
func (e *IOError) Is(target error) bool { return target == ErrIO }

// Usagef builds a UsageError with a formatted message.
func Usagef(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// Validationf builds a ValidationError for field with a formatted message.
func Validationf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ExitCode returns the process exit status for err: 0 for nil, 2 for usage
// errors and 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	default:
		return ExitFailure
	}
}
