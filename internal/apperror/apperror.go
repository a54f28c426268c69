// Package apperror carries the error taxonomy shared by the three services. Every
// error a usecase returns to a handler is either an *Error or an unexpected failure
// that the handler reports as INTERNAL.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation         = "VALIDATION"
	CodeInvalidJSON        = "INVALID_JSON"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeInvalidStatus      = "INVALID_STATUS"
	CodePaymentError       = "PAYMENT_ERROR"
	CodePaymentUnreachable = "PAYMENT_UNREACHABLE"
	CodeInternal           = "INTERNAL"
)

type Error struct {
	Status  int
	Code    string
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Code so callers can compare against the sentinel-like values
// returned by the constructors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Retryable reports whether the caller may safely repeat the request.
func (e *Error) Retryable() bool {
	return e.Status == http.StatusServiceUnavailable
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func Validation(message string, details any) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Message: message, Details: details}
}

func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Sprintf(format, args...))
}

func Conflict(message string, details any) *Error {
	return &Error{Status: http.StatusConflict, Code: CodeConflict, Message: message, Details: details}
}

func InvalidStatus(format string, args ...any) *Error {
	return New(http.StatusBadRequest, CodeInvalidStatus, fmt.Sprintf(format, args...))
}

func PaymentError(err error) *Error {
	return &Error{Status: http.StatusServiceUnavailable, Code: CodePaymentError, Message: "Payment service error", Err: err}
}

func PaymentUnreachable(err error) *Error {
	return &Error{Status: http.StatusServiceUnavailable, Code: CodePaymentUnreachable, Message: "Payment service unreachable", Err: err}
}

func Internal(message string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeInternal, Message: message, Err: err}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}
