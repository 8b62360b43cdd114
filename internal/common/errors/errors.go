// Package errors provides standardized error handling for the resume
// scoring pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Deterministic input parsing.
	ErrCodeTimezoneParseFailed ErrorCode = "TIMEZONE_PARSE_FAILED"
	ErrCodePeriodParseFailed   ErrorCode = "PERIOD_PARSE_FAILED"
	ErrCodeMessageParseFailed  ErrorCode = "MESSAGE_PARSE_FAILED"

	// AI model collaborators.
	ErrCodeOracleQueryFailed    ErrorCode = "ORACLE_QUERY_FAILED"
	ErrCodeOracleTimeout        ErrorCode = "ORACLE_TIMEOUT"
	ErrCodeOracleInvalidOutput  ErrorCode = "ORACLE_INVALID_OUTPUT"
	ErrCodeSkillsMatchFailed    ErrorCode = "SKILLS_MATCH_FAILED"
	ErrCodeExperienceTagFailed  ErrorCode = "EXPERIENCE_TAG_FAILED"
	ErrCodeFieldSimilarityError ErrorCode = "FIELD_SIMILARITY_FAILED"

	// External services.
	ErrCodeObjectNotFound     ErrorCode = "OBJECT_NOT_FOUND"
	ErrCodeObjectFetchFailed  ErrorCode = "OBJECT_FETCH_FAILED"
	ErrCodePersistenceFailed  ErrorCode = "PERSISTENCE_FAILED"
	ErrCodeQueueScoringFailed ErrorCode = "QUEUE_SCORING_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// CodeOf extracts the error code when err wraps a StandardError, or "" when
// it does not.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// NewParseError creates a non-retryable parse error for malformed timezone
// or date strings.
func NewParseError(code ErrorCode, details string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   "input parsing failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewOracleError creates a retryable model-call error: the call failed,
// timed out, or returned output that could not be decoded.
func NewOracleError(code ErrorCode, err error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   "AI model call failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInvalidOutputError creates a non-retryable error for oracle responses
// that parse but fail shape validation.
func NewInvalidOutputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeOracleInvalidOutput,
		Message:   "AI model returned unusable output",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError creates a non-retryable object store miss.
func NewNotFoundError(objectKey string) *StandardError {
	return &StandardError{
		Code:      ErrCodeObjectNotFound,
		Message:   "object not found in store",
		Details:   fmt.Sprintf("objectKey: %s", objectKey),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageError creates a retryable object store error.
func NewStorageError(objectKey string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeObjectFetchFailed,
		Message:   "object store fetch failed",
		Details:   fmt.Sprintf("objectKey: %s, error: %s", objectKey, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewPersistenceError creates a retryable platform API error.
func NewPersistenceError(endpoint string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePersistenceFailed,
		Message:   "platform API update rejected",
		Details:   fmt.Sprintf("endpoint: %s, error: %s", endpoint, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}
