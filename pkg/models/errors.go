package models

import (
	"errors"
	"fmt"
)

// Error codes used across the client
const (
	ErrCodeNetwork        = "NETWORK_ERROR"
	ErrCodeServer         = "SERVER_ERROR"
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeAuthRequired   = "AUTH_REQUIRED"
	ErrCodeMalformedToken = "MALFORMED_TOKEN"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeForbidden      = "FORBIDDEN"
)

// Common errors
var (
	ErrAuthRequired   = errors.New("you need to be logged in for this action")
	ErrAdminRequired  = errors.New("admin privileges required")
	ErrMalformedToken = errors.New("stored token is malformed")
	ErrEmptyContent   = errors.New("content must not be empty")
	ErrNotConnected   = errors.New("chat channel is not connected")
	ErrNotFound       = errors.New("resource not found")
)

// AppError is the structured error carried between the gateway client and
// the surfaces. Code is one of the ErrCode constants; StatusCode is set for
// server-reported failures only.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code,omitempty"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNetworkError wraps a transport-level failure (dial, timeout, broken
// connection). The request may or may not have reached the server.
func NewNetworkError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeNetwork,
		Message: err.Error(),
		Err:     err,
	}
}

// NewServerError wraps a non-2xx response with whatever body the server sent.
func NewServerError(statusCode int, body string) *AppError {
	return &AppError{
		Code:       ErrCodeServer,
		Message:    body,
		StatusCode: statusCode,
	}
}

// NewValidationError reports a client-side precondition failure; nothing was
// sent to the server.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// NewAuthRequiredError reports a missing session; nothing was sent.
func NewAuthRequiredError() *AppError {
	return &AppError{
		Code:    ErrCodeAuthRequired,
		Message: ErrAuthRequired.Error(),
		Err:     ErrAuthRequired,
	}
}

// IsAuthRequired reports whether err means the user must log in first.
func IsAuthRequired(err error) bool {
	if errors.Is(err, ErrAuthRequired) {
		return true
	}
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeAuthRequired
}

// IsNetworkError reports whether err was a transport failure rather than a
// server-reported one.
func IsNetworkError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeNetwork
}

// IsValidationError reports whether err was a client-side precondition.
func IsValidationError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeValidation
}
