package utils

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

type ErrorKind string

const (
	KindNotFound     ErrorKind = "not_found"
	KindForbidden    ErrorKind = "forbidden"
	KindValidation   ErrorKind = "validation_error"
	KindConflict     ErrorKind = "conflict"
	KindUnauthorized ErrorKind = "unauthorized"
	KindThrottled    ErrorKind = "throttled"
	KindInternal     ErrorKind = "internal"
)

// AppError is the error type every service returns for an expected failure.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func newAppError(kind ErrorKind, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func ErrNotFound(format string, args ...interface{}) *AppError {
	return newAppError(KindNotFound, format, args...)
}

func ErrForbidden(format string, args ...interface{}) *AppError {
	return newAppError(KindForbidden, format, args...)
}

func ErrValidation(format string, args ...interface{}) *AppError {
	return newAppError(KindValidation, format, args...)
}

func ErrConflict(format string, args ...interface{}) *AppError {
	return newAppError(KindConflict, format, args...)
}

func ErrUnauthorized(format string, args ...interface{}) *AppError {
	return newAppError(KindUnauthorized, format, args...)
}

// Internal wraps an unexpected error, keeping the cause for logging.
func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf classifies err. gorm sentinel errors are mapped onto the matching kind.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &appErr):
		return appErr.Kind
	case errors.Is(err, gorm.ErrRecordNotFound):
		return KindNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return KindConflict
	default:
		return KindInternal
	}
}

// StatusFor maps an error kind onto an HTTP status code.
func StatusFor(kind ErrorKind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindThrottled:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// IsKind reports whether err classifies as kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
