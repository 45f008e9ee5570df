package swiftcsv

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies the errors this package returns, mirroring the
// taxonomy shared between the reader and the writer.
type ErrorKind int

const (
	// ErrInvalidConfiguration reports a delimiter, escape, or trim set
	// collision detected at construction time.
	ErrInvalidConfiguration ErrorKind = iota + 1
	// ErrInvalidInput reports malformed stream content: a row-width
	// mismatch, a raw delimiter in an unescaped field, or an unbalanced
	// escape at EOF.
	ErrInvalidInput
	// ErrInferenceFailure reports that no dialect candidate scored above
	// zero during inference.
	ErrInferenceFailure
	// ErrStreamFailure reports an I/O failure from the underlying
	// decoder or sink.
	ErrStreamFailure
	// ErrInvalidOperation reports a writer API misuse: emitting past the
	// expected field count, ending an empty row before the width is
	// known, or reading captured state before the file is closed.
	ErrInvalidOperation
)

// String renders the error kind's name.
func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidConfiguration:
		return "invalidConfiguration"
	case ErrInvalidInput:
		return "invalidInput"
	case ErrInferenceFailure:
		return "inferenceFailure"
	case ErrStreamFailure:
		return "streamFailure"
	case ErrInvalidOperation:
		return "invalidOperation"
	default:
		return "unknown"
	}
}

// Error is returned by every fallible operation in this package. It carries
// a stable Kind, a human-readable Reason, and a bag of diagnostic
// key/value pairs (at minimum the offending delimiter, escape scalar, or
// row/field index, where applicable).
type Error struct {
	Kind        ErrorKind
	Reason      string
	Diagnostics map[string]any
	cause       error
}

// newError constructs an *Error of the given kind with an empty
// diagnostics map, ready for with() chaining.
func newError(kind ErrorKind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason, Diagnostics: map[string]any{}}
}

// with attaches a diagnostic key/value pair and returns the receiver for
// chaining.
func (e *Error) with(key string, value any) *Error {
	e.Diagnostics[key] = value
	return e
}

// wrapStream wraps an underlying stream error (from the decoder or sink)
// as a streamFailure, keeping it in the Unwrap chain so errors.Is and
// errors.As reach the original io error. *Error has no Cause method, so
// github.com/pkg/errors.Cause stops at the *Error itself.
func wrapStream(err error) *Error {
	wrapped := errors.Wrap(err, "swiftcsv: underlying stream failed")
	return &Error{Kind: ErrStreamFailure, Reason: wrapped.Error(), Diagnostics: map[string]any{}, cause: wrapped}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Diagnostics) == 0 {
		return fmt.Sprintf("swiftcsv: %s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("swiftcsv: %s: %s (%v)", e.Kind, e.Reason, e.Diagnostics)
}

// Unwrap returns the wrapped stream error, if any, allowing errors.Is and
// errors.As to reach it.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, &swiftcsv.Error{Kind: swiftcsv.ErrInvalidInput})
// style checks against a sentinel built with the matching kind and no
// diagnostics.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}
