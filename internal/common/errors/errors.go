// Package errors provides the standardized error taxonomy for the tracker.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// External call failures
	ErrCodeConfiguration     ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeTransport         ErrorCode = "TRANSPORT_ERROR"
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	ErrCodeParse             ErrorCode = "PARSE_ERROR"
	ErrCodeTimeout           ErrorCode = "TIMEOUT"

	// Application State Store failures
	ErrCodeStorage          ErrorCode = "STORAGE_ERROR"
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
)

// Sentinels for errors.Is. A StandardError matches the sentinel with the same code.
var (
	ErrConfiguration     = &StandardError{Code: ErrCodeConfiguration}
	ErrTransport         = &StandardError{Code: ErrCodeTransport}
	ErrMalformedResponse = &StandardError{Code: ErrCodeMalformedResponse}
	ErrParse             = &StandardError{Code: ErrCodeParse}
	ErrTimeout           = &StandardError{Code: ErrCodeTimeout}
	ErrStorage           = &StandardError{Code: ErrCodeStorage}
	ErrValidationFailed  = &StandardError{Code: ErrCodeValidationFailed}
	ErrNotFound          = &StandardError{Code: ErrCodeNotFound}
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Err       error                  `json:"-"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

func (e *StandardError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a StandardError carrying the same code.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// ==========================
// 2. Error Constructors
// ==========================

// NewConfigurationError reports a missing or unusable setting, typically an API key.
func NewConfigurationError(service, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfiguration,
		Message:   fmt.Sprintf("%s is not configured", service),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTransportError wraps a network failure or a non-success HTTP status.
func NewTransportError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransport,
		Message:   fmt.Sprintf("%s request failed", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Err:       err,
	}
}

// NewMalformedResponseError reports a successful call whose payload lacks an expected field.
func NewMalformedResponseError(service, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedResponse,
		Message:   fmt.Sprintf("invalid response format from %s", service),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewParseError reports generated text without recoverable structured data.
// The raw text is kept so a human can enter the data by hand.
func NewParseError(message, raw string) *StandardError {
	return &StandardError{
		Code:      ErrCodeParse,
		Message:   message,
		Details:   "Raw AI response: " + raw,
		Retryable: false,
		Metadata:  map[string]interface{}{"raw": raw},
		Timestamp: time.Now().UTC(),
	}
}

// NewTimeoutError reports an exceeded client-side deadline.
func NewTimeoutError(service string, after time.Duration) *StandardError {
	return &StandardError{
		Code:      ErrCodeTimeout,
		Message:   fmt.Sprintf("%s request timed out", service),
		Details:   fmt.Sprintf("no response within %s", after),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewStorageError(op, key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorage,
		Message:   fmt.Sprintf("storage %s failed", op),
		Details:   fmt.Sprintf("key: %s, error: %s", key, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Err:       err,
	}
}

func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewNotFoundError(kind, id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   fmt.Sprintf("%s not found", kind),
		Details:   fmt.Sprintf("id: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Classification Helpers
// ==========================

// Is and As forward to the standard library so callers importing this
// package as "errors" keep both.
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target interface{}) bool { return stderrors.As(err, target) }

func New(text string) error { return stderrors.New(text) }

// AsStandardError extracts a StandardError from an error chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// IsRetryableErrorCode reports whether the caller may simply re-invoke the operation.
// Nothing retries automatically.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeTransport, ErrCodeTimeout, ErrCodeStorage:
		return true
	default:
		return false
	}
}

// GetErrorCategory groups error codes for log aggregation.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CONFIGURATION"):
		return "CONFIGURATION"
	case strings.Contains(codeStr, "TRANSPORT") || strings.Contains(codeStr, "TIMEOUT"):
		return "NETWORK"
	case strings.Contains(codeStr, "RESPONSE") || strings.Contains(codeStr, "PARSE"):
		return "AI"
	case strings.Contains(codeStr, "STORAGE") || strings.Contains(codeStr, "NOT_FOUND"):
		return "STORAGE"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
