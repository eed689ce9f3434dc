package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failure that carries the HTTP status it should be reported with.
type Error struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Wrap attaches the underlying cause. The cause is logged, never rendered.
func (e *Error) Wrap(cause error) *Error {
	e.cause = cause
	return e
}

// WithDetails appends human readable details rendered in the errors array.
func (e *Error) WithDetails(details ...string) *Error {
	e.Errors = append(e.Errors, details...)
	return e
}

func New(statusCode int, message string) *Error {
	return &Error{StatusCode: statusCode, Message: message, Errors: []string{}}
}

func BadRequest(message string) *Error   { return New(http.StatusBadRequest, message) }
func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }
func NotFound(message string) *Error     { return New(http.StatusNotFound, message) }
func Conflict(message string) *Error     { return New(http.StatusConflict, message) }
func Internal(message string) *Error     { return New(http.StatusInternalServerError, message) }

// From returns err as *Error, converting unknown errors into a 500.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("Something went wrong").Wrap(err)
}

// StatusOf reports the HTTP status err maps to.
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return From(err).StatusCode
}
