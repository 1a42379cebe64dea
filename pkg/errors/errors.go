package errors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failure reported by the backend or raised locally
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
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

// Failure classes consumed by controllers and forms
const (
	ErrNetwork ErrorCode = iota + 1000
	ErrServer
	ErrNotFound
	ErrValidation
	ErrLocalValidation
	ErrUnauthorized
)

// Error constructors
func NewNetwork(message string, err error) *AppError {
	return &AppError{
		Code:    ErrNetwork,
		Message: message,
		Err:     err,
	}
}

func NewServer(message string, err error) *AppError {
	return &AppError{
		Code:    ErrServer,
		Message: message,
		Err:     err,
	}
}

func NewNotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func NewValidation(message string, err error) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
		Err:     err,
	}
}

func NewLocalValidation(message string) *AppError {
	return &AppError{
		Code:    ErrLocalValidation,
		Message: message,
	}
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

// Code extracts the ErrorCode from err, ErrServer when err is not an AppError.
func Code(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrServer
}

// Message extracts the human-readable message from err.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

func IsNetwork(err error) bool  { return Code(err) == ErrNetwork }
func IsNotFound(err error) bool { return Code(err) == ErrNotFound }

func IsValidation(err error) bool {
	code := Code(err)
	return code == ErrValidation || code == ErrLocalValidation
}
