// Package errors defines the failure kinds surfaced by karu. Every file
// operation and listing call returns one of these so the browser can show a
// single message without caring where it came from.
package errors

import (
	"errors"
	"fmt"
)

// Re-exported so callers only import one errors package.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
)

// Kind classifies a failure.
type Kind int

const (
	Unknown Kind = iota
	// IOFailure covers filesystem, trash, open and decode failures.
	IOFailure
	// InvalidInput is a user-supplied value that cannot be acted on.
	InvalidInput
	// PreviewUnavailable is a rendering fallback, not a real error.
	PreviewUnavailable
)

func (k Kind) String() string {
	switch k {
	case IOFailure:
		return "io failure"
	case InvalidInput:
		return "invalid input"
	case PreviewUnavailable:
		return "preview unavailable"
	default:
		return "unknown"
	}
}

// Error is the concrete error type.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s %s", e.Op, e.Path)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IO wraps err as an IOFailure. A nil err yields nil.
func IO(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: IOFailure, Op: op, Path: path, Err: err}
}

// Invalid creates an InvalidInput error.
func Invalid(op, format string, args ...any) error {
	return &Error{Kind: InvalidInput, Op: op, Err: fmt.Errorf(format, args...)}
}

// Unavailable creates a PreviewUnavailable error.
func Unavailable(path string, err error) error {
	return &Error{Kind: PreviewUnavailable, Op: "preview", Path: path, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
