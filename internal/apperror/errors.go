package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the application error type. Every error that should map to a
// specific HTTP status is created through one of the constructors below;
// anything else is treated as an internal error by the handlers.
type Error struct {
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode reports the HTTP status this error maps to.
func (e *Error) StatusCode() int {
	return e.Code
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Code: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

func PermissionDenied(format string, args ...interface{}) *Error {
	return &Error{Code: http.StatusForbidden, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Code: http.StatusConflict, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...interface{}) *Error {
	return &Error{Code: http.StatusUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps a store or filesystem failure. The message is logged but
// never surfaced to clients.
func Internal(err error) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: "internal error", Err: err}
}

// Status extracts the HTTP status from err, defaulting to 500.
func Status(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == http.StatusNotFound
}

func IsConflict(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == http.StatusConflict
}

func IsPermissionDenied(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == http.StatusForbidden
}
