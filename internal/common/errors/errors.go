// Package errors provides standardized error handling for the order-intent
// resolver and its HTTP surface.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
	ErrCodeAuthorizationFailed ErrorCode = "AUTHORIZATION_FAILED"
	ErrCodeCatalogFetchFailed  ErrorCode = "CATALOG_FETCH_FAILED"
	ErrCodeHistoryFetchFailed  ErrorCode = "HISTORY_FETCH_FAILED"

	ErrCodeGenerationNotConfigured  ErrorCode = "GENERATION_NOT_CONFIGURED"
	ErrCodeGenerationTransportError ErrorCode = "GENERATION_TRANSPORT_ERROR"
	ErrCodeRecoveryExhausted        ErrorCode = "RECOVERY_EXHAUSTED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// --- Constructors ---

// NewValidationError creates a non-retryable request validation error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthorizationError creates a non-retryable authorization error.
func NewAuthorizationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthorizationFailed,
		Message:   "Caller is not authorized for this customer",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogFetchError creates a retryable catalog fetch error. The request
// cannot proceed without the authorized product set.
func NewCatalogFetchError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogFetchFailed,
		Message:   "Failed to load the customer's product catalog",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryFetchError creates the non-fatal order-history fetch error.
// Callers log it and proceed with an empty history.
func NewHistoryFetchError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryFetchFailed,
		Message:   "Failed to load recent order history",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationTransportError wraps a transport-level generation failure.
func NewGenerationTransportError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationTransportError,
		Message:   "Generation service call failed",
		Details:   err.Error(),
		Retryable: false, // single shot: the resolver degrades instead of retrying
		Timestamp: time.Now().UTC(),
	}
}

// HTTPStatus maps an error code to the status the HTTP layer surfaces.
// Everything past the validation and authorization gates degrades to a
// best-effort 200 response and never reaches this mapping.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeAuthorizationFailed:
		return http.StatusForbidden
	case ErrCodeCatalogFetchFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
