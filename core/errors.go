package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// PermissionError is returned when the acting user lacks the role or ownership required by an action.
type PermissionError struct {
	Detail string
}

func NewPermissionError(detail string) *PermissionError {
	return &PermissionError{Detail: detail}
}

func (err PermissionError) Error() string {
	return err.Detail
}

// NotFoundError is returned when a referenced object does not resolve.
type NotFoundError struct {
	Detail string
}

func NewNotFoundError(detail string) *NotFoundError {
	return &NotFoundError{Detail: detail}
}

func (err NotFoundError) Error() string {
	return err.Detail
}

// IsPermissionError reports whether the cause of err is a *PermissionError.
func IsPermissionError(err error) bool {
	_, ok := errors.Cause(err).(*PermissionError)
	return ok
}

// IsNotFound reports whether the cause of err is a *NotFoundError.
func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}

// IsValidationError reports whether the cause of err is a *ValidationError.
func IsValidationError(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
