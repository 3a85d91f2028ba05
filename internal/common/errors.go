package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors. The HTTP layer maps these onto status codes;
// nothing below it knows about HTTP.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
	ErrDatabase     = errors.New("database error")
	ErrValidation   = errors.New("validation failed")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// NotFoundError builds the uniform not-found error. Ownership misses use the
// same message as true absences so callers cannot probe for existence.
func NotFoundError(what string) *AppError {
	return NewAppError("NOT_FOUND", what+" not found", ErrNotFound)
}

func ConflictError(message string) *AppError {
	return NewAppError("CONFLICT", message, ErrConflict)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError("UNAUTHORIZED", message, ErrUnauthorized)
}

func DatabaseError(message string, cause error) *AppError {
	return NewAppError("DATABASE_ERROR", message, errors.Join(ErrDatabase, cause))
}
