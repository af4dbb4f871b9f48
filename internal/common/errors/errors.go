// Package errors provides the structured error model shared by the HTTP
// transport and the Zeebe job worker.
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
	// Caller errors
	ErrCodeMessageRequired ErrorCode = "MESSAGE_REQUIRED"
	ErrCodeInvalidRequest  ErrorCode = "INVALID_REQUEST"
	ErrCodeRateLimited     ErrorCode = "RATE_LIMITED"

	// Upstream collaborators
	ErrCodeLanguageDetectionFailed ErrorCode = "LANGUAGE_DETECTION_FAILED"
	ErrCodeTranslationFailed       ErrorCode = "TRANSLATION_FAILED"
	ErrCodeGenerationFailed        ErrorCode = "GENERATION_FAILED"
	ErrCodeGenerationTimeout       ErrorCode = "GENERATION_TIMEOUT"
	ErrCodeSessionStoreFailed      ErrorCode = "SESSION_STORE_FAILED"

	// Knowledge base
	ErrCodeKnowledgeBaseInvalid     ErrorCode = "KNOWLEDGE_BASE_INVALID"
	ErrCodeKnowledgeBaseUnavailable ErrorCode = "KNOWLEDGE_BASE_UNAVAILABLE"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause so errors.Is keeps working across the
// package sentinels.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key/value pair and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func newError(code ErrorCode, message string, cause error, retryable bool) *StandardError {
	e := &StandardError{
		Code:      code,
		Message:   message,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// AsStandardError extracts a *StandardError from err's chain, or wraps err as
// an internal error.
func AsStandardError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func NewMessageRequiredError() *StandardError {
	return newError(ErrCodeMessageRequired, "Message is required", nil, false)
}

func NewInvalidRequestError(details string) *StandardError {
	e := newError(ErrCodeInvalidRequest, "Invalid request", nil, false)
	e.Details = details
	return e
}

func NewRateLimitedError(limit int) *StandardError {
	e := newError(ErrCodeRateLimited, "Session request limit reached", nil, false)
	e.Details = fmt.Sprintf("limit: %d", limit)
	return e
}

func NewLanguageDetectionFailedError(err error) *StandardError {
	return newError(ErrCodeLanguageDetectionFailed, "Language detection failed", err, false)
}

func NewTranslationFailedError(err error) *StandardError {
	return newError(ErrCodeTranslationFailed, "Translation service error", err, true)
}

func NewGenerationFailedError(err error) *StandardError {
	return newError(ErrCodeGenerationFailed, "Answer generation failed", err, true)
}

func NewGenerationTimeoutError(err error) *StandardError {
	return newError(ErrCodeGenerationTimeout, "Answer generation timed out", err, true)
}

func NewSessionStoreFailedError(err error) *StandardError {
	return newError(ErrCodeSessionStoreFailed, "Session store unavailable", err, true)
}

func NewKnowledgeBaseInvalidError(details string) *StandardError {
	e := newError(ErrCodeKnowledgeBaseInvalid, "Knowledge base document is invalid", nil, false)
	e.Details = details
	return e
}

func NewKnowledgeBaseUnavailableError(err error) *StandardError {
	return newError(ErrCodeKnowledgeBaseUnavailable, "Knowledge base could not be loaded", err, true)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err, false)
}

// ==========================
// 4. Classification
// ==========================

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeKnowledgeBaseUnavailable,
		ErrCodeSessionStoreFailed:
		return 3
	case ErrCodeTranslationFailed,
		ErrCodeGenerationFailed:
		return 2
	case ErrCodeGenerationTimeout:
		return 1
	default:
		return 0
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case code == ErrCodeMessageRequired || code == ErrCodeInvalidRequest:
		return "VALIDATION"
	case code == ErrCodeRateLimited || strings.Contains(codeStr, "SESSION"):
		return "SESSION"
	case strings.Contains(codeStr, "TRANSLATION") || strings.Contains(codeStr, "LANGUAGE"):
		return "LANGUAGE"
	case strings.Contains(codeStr, "GENERATION"):
		return "AI"
	case strings.Contains(codeStr, "KNOWLEDGE"):
		return "KNOWLEDGE"
	default:
		return "OTHER"
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      string(stdErr.Code),
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"errorCategory":     GetErrorCategory(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}
