// Package errors provides structured error types for nexara.
// These errors provide context about what operation failed and where, and
// optionally carry a message that is safe to show to the user as-is.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Msg is a user-facing message. It is shown verbatim in the transcript and
// status panels, so it should not contain operation names or wrapping.
type Msg string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindNetwork
	KindBackend
	KindConfig
	KindClipboard
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindBackend:
		return "backend error"
	case KindConfig:
		return "configuration error"
	case KindClipboard:
		return "clipboard error"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for nexara.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
	Msg     Msg    // User-facing message, if any
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - Msg: the user-facing message
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case Msg:
			e.Msg = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		switch {
		case e.Context != "":
			e.Err = errors.New(e.Context)
			e.Context = ""
		case e.Msg != "":
			e.Err = errors.New(string(e.Msg))
		default:
			e.Err = errors.New(e.Kind.String())
		}
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}

// GetKind returns the Kind of the outermost Error in the chain that has one.
func GetKind(err error) Kind {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return KindUnknown
		}
		if e.Kind != KindUnknown {
			return e.Kind
		}
		err = e.Err
	}
	return KindUnknown
}

// UserMessage returns the first user-facing message found in the chain,
// or fallback when there is none.
func UserMessage(err error, fallback string) string {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			break
		}
		if e.Msg != "" {
			return string(e.Msg)
		}
		err = e.Err
	}
	return fallback
}

// Wrap adds an operation to an existing error, keeping its Kind and message.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// File errors
func FileNotFound(op Op, path string) error {
	return E(op, KindNotFound, Msg(fmt.Sprintf("file not found: %s", path)))
}

func FileReadFailed(op Op, path string, err error) error {
	return E(op, KindIO, fmt.Sprintf("failed to read %s", path), err)
}
