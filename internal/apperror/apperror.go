// Package apperror defines the client-facing error taxonomy of the API.
//
// Services return *Error values; handlers translate them into HTTP responses
// through HTTPStatus. Errors compare by code, so
//
//	errors.Is(err, apperror.ErrNotFound)
//
// holds for every not-found error regardless of its message.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"
	CodeValidation    Code = "VALIDATION"
	CodeInternal      Code = "INTERNAL"
)

// HTTPStatus returns the HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a code and one or more human-readable messages.
type Error struct {
	Code     Code
	Messages []string
	cause    error
}

func (e *Error) Error() string {
	msg := strings.Join(e.Messages, "; ")
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithCause returns a copy of e wrapping err.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Messages: e.Messages, cause: err}
}

// Sentinels for errors.Is.
var (
	ErrNotFound      = &Error{Code: CodeNotFound, Messages: []string{"not found"}}
	ErrAlreadyExists = &Error{Code: CodeAlreadyExists, Messages: []string{"already exists"}}
	ErrValidation    = &Error{Code: CodeValidation, Messages: []string{"validation failed"}}
	ErrInternal      = &Error{Code: CodeInternal, Messages: []string{"internal error"}}
)

// NotFound reports a missing entity of the given kind, e.g.
// "Tag with id = [999] not found".
func NotFound(kind string, id any) *Error {
	return NotFoundf("%s with id = [%v] not found", kind, id)
}

// NotFoundf reports a missing result described by a free-form message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Messages: []string{fmt.Sprintf(format, args...)}}
}

// AlreadyExists reports a uniqueness violation, e.g.
// "Tag with name = [beauty] already exists".
func AlreadyExists(kind, field string, value any) *Error {
	return &Error{
		Code:     CodeAlreadyExists,
		Messages: []string{fmt.Sprintf("%s with %s = [%v] already exists", kind, field, value)},
	}
}

// Validation reports one message per violated constraint.
func Validation(messages ...string) *Error {
	if len(messages) == 0 {
		messages = []string{"validation failed"}
	}
	return &Error{Code: CodeValidation, Messages: messages}
}

// Internal wraps an unexpected failure. The message is safe to show clients.
func Internal(err error) *Error {
	return ErrInternal.WithCause(err)
}

// From extracts an *Error from err, treating anything else as internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
