package models

import (
	"errors"
	"fmt"
)

// Error codes carried by AppError.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeIntegrity    = "INTEGRITY_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is the application's error type. Validation errors are raised
// eagerly, before any persistence attempt; integrity errors only surface when
// a write hits a database constraint.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewIntegrityError(err error) *AppError {
	return &AppError{
		Code:    CodeIntegrity,
		Message: "database constraint violated",
		Err:     err,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

func hasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsValidationError reports whether err is an eager validation failure.
func IsValidationError(err error) bool { return hasCode(err, CodeValidation) }

// IsIntegrityError reports whether err is a commit-time constraint violation.
func IsIntegrityError(err error) bool { return hasCode(err, CodeIntegrity) }

// IsNotFoundError reports whether err marks a missing resource.
func IsNotFoundError(err error) bool { return hasCode(err, CodeNotFound) }
