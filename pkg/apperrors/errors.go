package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error so the HTTP boundary can translate it.
type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindNotFound     Kind = "NOT_FOUND"
	KindForbidden    Kind = "FORBIDDEN"
	KindConflict     Kind = "CONFLICT"
	KindExpired      Kind = "EXPIRED"
	KindExhausted    Kind = "EXHAUSTED"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindInternal     Kind = "INTERNAL"
)

// Error is the error type returned by services.
type Error struct {
	kind    Kind
	message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

// Kind returns the error classification.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the client facing message without the wrapped cause.
func (e *Error) Message() string { return e.message }

func (e *Error) Unwrap() error { return e.err }

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{kind: kind, message: message, err: err}
}

func Validation(message string) *Error { return New(KindValidation, message) }

func NotFound(resource string) *Error { return New(KindNotFound, resource+" not found") }

func Forbidden(message string) *Error { return New(KindForbidden, message) }

func Conflict(message string) *Error { return New(KindConflict, message) }

func Expired(message string) *Error { return New(KindExpired, message) }

func Exhausted(message string) *Error { return New(KindExhausted, message) }

func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }

// Internal wraps an unexpected failure (usually a store error).
func Internal(message string, err error) *Error { return Wrap(KindInternal, message, err) }

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind
	}
	return KindInternal
}

// Is reports whether err is an application error of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.kind == kind
}

// HTTPStatus maps a kind onto the status code sent to clients.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindExpired, KindExhausted:
		return http.StatusGone
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
