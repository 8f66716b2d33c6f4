package errors

import (
	"fmt"
)

// AppError is the wire-level error shape for the API. StatusCode is not
// serialized; the response writer uses it for the HTTP status.
type AppError struct {
	Code       string      `json:"error"`
	Message    string      `json:"message,omitempty"`
	Details    interface{} `json:"details,omitempty"`
	RetryAfter int         `json:"retryAfter,omitempty"`
	StatusCode int         `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithDetails returns a copy carrying machine-readable details, so the
// sentinel catalog entries stay immutable.
func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// WithMessage returns a copy with a more specific message.
func (e *AppError) WithMessage(message string) *AppError {
	clone := *e
	clone.Message = message
	return &clone
}

// WithRetryAfter returns a copy carrying the back-off hint in seconds.
func (e *AppError) WithRetryAfter(seconds int) *AppError {
	clone := *e
	clone.RetryAfter = seconds
	return &clone
}
