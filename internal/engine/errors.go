// internal/engine/errors.go
package engine

import (
	"context"
	"errors"
	"fmt"
)

// Common engine errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrTimeout      = errors.New("request timeout")
	ErrNetworkError = errors.New("network error")
	ErrParseError   = errors.New("failed to parse response")
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeTimeout      ErrorCode = "TIMEOUT"
	ErrCodeNetworkError ErrorCode = "NETWORK_ERROR"
	ErrCodeParseError   ErrorCode = "PARSE_ERROR"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
)

var sentinels = map[ErrorCode]error{
	ErrCodeInvalidInput: ErrInvalidInput,
	ErrCodeTimeout:      ErrTimeout,
	ErrCodeNetworkError: ErrNetworkError,
	ErrCodeParseError:   ErrParseError,
}

// EngineError wraps errors with additional context
type EngineError struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Retry      bool
	Details    map[string]interface{}
}

// Error implements the error interface
func (e *EngineError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *EngineError) Unwrap() error {
	return e.Underlying
}

// Is matches another EngineError with the same code, or the sentinel for
// this error's code, before falling back to the underlying chain.
func (e *EngineError) Is(target error) bool {
	if t, ok := target.(*EngineError); ok {
		return e.Code == t.Code
	}
	if s, ok := sentinels[e.Code]; ok && s == target {
		return true
	}
	return errors.Is(e.Underlying, target)
}

// NewEngineError creates a new EngineError
func NewEngineError(code ErrorCode, message string, err error) *EngineError {
	return &EngineError{
		Code:       code,
		Message:    message,
		Underlying: err,
		Retry:      false,
		Details:    make(map[string]interface{}),
	}
}

// InvalidInput is shorthand for a caller error that must not be retried
func InvalidInput(format string, args ...interface{}) *EngineError {
	return NewEngineError(ErrCodeInvalidInput, fmt.Sprintf(format, args...), nil)
}

// WithRetry marks the error as retryable
func (e *EngineError) WithRetry() *EngineError {
	e.Retry = true
	return e
}

// WithDetail adds a detail to the error
func (e *EngineError) WithDetail(key string, value interface{}) *EngineError {
	e.Details[key] = value
	return e
}

// CodeOf returns the code carried by err. Bare context deadlines map to
// TIMEOUT; anything unclassified is INTERNAL_ERROR.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrCodeTimeout
	}
	return ErrCodeInternal
}

// MessageOf returns the human-readable message of err without the code prefix
func MessageOf(err error) string {
	var ee *EngineError
	if errors.As(err, &ee) {
		if ee.Underlying != nil {
			return fmt.Sprintf("%s: %v", ee.Message, ee.Underlying)
		}
		return ee.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
