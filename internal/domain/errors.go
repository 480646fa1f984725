package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput  ErrorCode = "INVALID_INPUT"
	CodeConfiguration ErrorCode = "CONFIGURATION_ERROR"

	// Study session specific errors
	CodeLLMServiceError ErrorCode = "LLM_SERVICE_ERROR"

	// Request validation errors
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeMissingField ErrorCode = "MISSING_FIELD"
	CodeOutOfRange   ErrorCode = "OUT_OF_RANGE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause so callers can use errors.Is / errors.As
// against the original client error.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewConfigurationError(message string) *DomainError {
	return NewError(CodeConfiguration, message, nil)
}

// NewLLMServiceError wraps a completion client failure. The phase names the
// step of the session that was running (generate, reflect, regenerate).
func NewLLMServiceError(phase string, cause error) *DomainError {
	return NewError(CodeLLMServiceError, fmt.Sprintf("Failed to process with LLM service during %s", phase), cause)
}

// IsCode reports whether err is a DomainError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	de, ok := AsDomainError(err)
	return ok && de.Code == code
}
