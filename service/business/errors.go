package business

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a business failure for callers. Codes, not
// concrete error values, cross the handler boundary.
type ErrorCode string

const (
	CodeValidation  ErrorCode = "VALIDATION"
	CodeNotFound    ErrorCode = "NOT_FOUND"
	CodeForbidden   ErrorCode = "FORBIDDEN"
	CodeStorage     ErrorCode = "STORAGE"
	CodePersistence ErrorCode = "PERSISTENCE"
	CodeCancelled   ErrorCode = "CANCELLED"
)

// Error is a classified business failure, optionally wrapping the
// collaborator error that caused it.
type Error struct {
	Code  ErrorCode
	Msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:  code,
		Msg:   fmt.Sprintf(format, args...),
		cause: cause,
	}
}

func ValidationErrorf(format string, args ...any) *Error {
	return newError(CodeValidation, nil, format, args...)
}

func NotFoundErrorf(format string, args ...any) *Error {
	return newError(CodeNotFound, nil, format, args...)
}

func ForbiddenErrorf(format string, args ...any) *Error {
	return newError(CodeForbidden, nil, format, args...)
}

func StorageError(cause error, format string, args ...any) *Error {
	return newError(CodeStorage, cause, format, args...)
}

func PersistenceError(cause error, format string, args ...any) *Error {
	return newError(CodePersistence, cause, format, args...)
}

func CancelledError(cause error, format string, args ...any) *Error {
	return newError(CodeCancelled, cause, format, args...)
}

// CodeOf extracts the classification of err. Unclassified errors
// report as persistence failures, the safest default for callers.
func CodeOf(err error) ErrorCode {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	return CodePersistence
}

// HasCode reports whether err carries the given classification.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
