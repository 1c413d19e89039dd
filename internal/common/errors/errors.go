// Package errors provides the structured error type returned by the reminder
// pipeline and its mapping onto HTTP responses.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeRequestParseFailed       ErrorCode = "REQUEST_PARSE_FAILED"
	ErrCodeEmailSendFailed          ErrorCode = "EMAIL_SEND_FAILED"
	ErrCodeNotificationInsertFailed ErrorCode = "NOTIFICATION_INSERT_FAILED"
	ErrCodeInternal                 ErrorCode = "INTERNAL_ERROR"
)

// EmailSendFailedMessage is the caller-visible text for every email
// provider failure, network or HTTP.
const EmailSendFailedMessage = "Failed to send email"

// StandardError represents a structured application error. Message is what
// the caller sees; Details is for logs only.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause, when there is one.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata returns e with key set in its metadata.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// NewRequestParseError wraps a body decoding failure. The decoder's text is
// passed through to the caller unchanged.
func NewRequestParseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestParseFailed,
		Message:   err.Error(),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewEmailSendFailedError reports a failed or rejected provider call.
func NewEmailSendFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmailSendFailed,
		Message:   EmailSendFailedMessage,
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmailSendFailedErrorFrom is NewEmailSendFailedError keeping err as the cause.
func NewEmailSendFailedErrorFrom(err error) *StandardError {
	stdErr := NewEmailSendFailedError(err.Error())
	stdErr.cause = err
	return stdErr
}

// NewNotificationInsertFailedError wraps a store failure; the store's text
// is what the caller sees.
func NewNotificationInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationInsertFailed,
		Message:   err.Error(),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInternalError wraps anything that is not one of the above.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   err.Error(),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// PublicMessage is the text reported to the caller for err.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	return Normalize(err).Message
}

// IsCode reports whether err is a StandardError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == code
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	c := string(code)
	switch {
	case strings.HasPrefix(c, "REQUEST_"):
		return "input"
	case strings.HasPrefix(c, "EMAIL_"):
		return "email_provider"
	case strings.HasPrefix(c, "NOTIFICATION_"):
		return "notification_store"
	default:
		return "internal"
	}
}
