// Package status provides a coded, wrap-friendly error type used across the
// library. A *Status is an ordinary error: it participates in errors.Is /
// errors.As chains, so failure signaling stays must-handle by construction —
// an ignored return value is a compile-time vet warning, not a runtime flag.
package status

import (
	"errors"
	"fmt"
)

// Code classifies an error for programmatic handling.
type Code int

const (
	CodeOK Code = iota
	CodeCanceled
	CodeInvalidArgument
	CodeNotFound
	CodeAlreadyExists
	CodePermissionDenied
	CodeUnavailable
	CodeInternal
	CodeIO
)

func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeCanceled:
		return "canceled"
	case CodeInvalidArgument:
		return "invalid_argument"
	case CodeNotFound:
		return "not_found"
	case CodeAlreadyExists:
		return "already_exists"
	case CodePermissionDenied:
		return "permission_denied"
	case CodeUnavailable:
		return "unavailable"
	case CodeInternal:
		return "internal"
	case CodeIO:
		return "io"
	default:
		return "unknown"
	}
}

// Status is an error carrying a Code and optionally wrapping a cause.
type Status struct {
	code Code
	msg  string
	err  error
}

var _ error = (*Status)(nil)

// Errorf creates a Status with a formatted message. Format verbs may include
// %w to wrap a cause, matching fmt.Errorf semantics.
func Errorf(code Code, format string, args ...any) *Status {
	wrapped := fmt.Errorf(format, args...)
	return &Status{code: code, msg: wrapped.Error(), err: errors.Unwrap(wrapped)}
}

// Wrap creates a Status wrapping err with additional context. Returns nil if
// err is nil.
func Wrap(code Code, err error, msg string) *Status {
	if err == nil {
		return nil
	}
	return &Status{code: code, msg: msg, err: err}
}

// Error implements the error interface.
func (s *Status) Error() string {
	if s.err != nil && s.msg != "" {
		return s.msg + ": " + s.err.Error()
	}
	if s.err != nil {
		return s.err.Error()
	}
	return s.msg
}

// Code returns the status code.
func (s *Status) Code() Code {
	if s == nil {
		return CodeOK
	}
	return s.code
}

// Unwrap returns the wrapped cause, if any.
func (s *Status) Unwrap() error {
	return s.err
}

// CodeOf extracts the Code from any error. A nil error is CodeOK; an error
// with no *Status in its chain is CodeInternal.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var s *Status
	if errors.As(err, &s) {
		return s.Code()
	}
	return CodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
