package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeUnavailable  ErrorCode = "UNAVAILABLE"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrTaskNotFound  = NewError(ErrCodeNotFound, "task not found")
	ErrUserNotFound  = NewError(ErrCodeNotFound, "user not found")
	ErrRuleNotFound  = NewError(ErrCodeNotFound, "rule not found")
	ErrVideoNotFound = NewError(ErrCodeNotFound, "video not found")

	ErrSessionNotFound = NewError(ErrCodeNotFound, "session not found")
	ErrBadCredentials  = NewError(ErrCodeUnauthorized, "wrong email or password")
	ErrUnauthorized    = NewError(ErrCodeUnauthorized, "unauthorized")
	// ErrNotPermitted signals an actor toggling a task outside their department.
	ErrNotPermitted = NewError(ErrCodeForbidden, "actor may not modify tasks of this department")

	ErrInvalidPayload = NewError(ErrCodeInvalid, "invalid payload")
)

// StoreUnavailable marks a durable-store failure (unreachable or timed out).
// Toggle callers rely on it implying no partial effect was committed.
func StoreUnavailable(err error) *Error {
	return WrapError(ErrCodeUnavailable, "record store unavailable", err)
}

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
