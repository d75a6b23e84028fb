// Package errors defines the typed error taxonomy shared by every layer of
// authcore, so callers can distinguish "already exists" from "bad input"
// with errors.Is/As instead of string matching.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is one of the closed set of error categories the core can raise.
type Kind string

const (
	ModelSyntax        Kind = "model_syntax"
	MatcherSyntax      Kind = "matcher_syntax"
	MatcherRuntime     Kind = "matcher_runtime"
	UnsupportedEffect  Kind = "unsupported_effect"
	ArityMismatch      Kind = "arity_mismatch"
	AlreadyExists      Kind = "already_exists"
	NotFound           Kind = "not_found"
	LengthMismatch     Kind = "length_mismatch"
	CannotSaveFiltered Kind = "cannot_save_filtered"
	UnsupportedByAdapter Kind = "unsupported_by_adapter"
	AdapterIO          Kind = "adapter_io"
	WatcherError       Kind = "watcher_error"
)

// Error is the concrete type returned for every core-raised failure.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, errors.New(errors.NotFound, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an *Error of the given kind with no wrapped cause.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind wrapping cause.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf extracts the Kind of err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
