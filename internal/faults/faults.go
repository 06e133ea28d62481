package faults

import (
	"errors"
	"fmt"
)

// ErrNoAPIKey indicates a provider credential is not configured.
// Callers are expected to fall back to the bundled sample dataset
// instead of issuing the upstream call.
var ErrNoAPIKey = errors.New("provider API key not configured")

// ErrNotFound indicates an unknown team, conference, or resource.
var ErrNotFound = errors.New("not found")

// UpstreamError captures a non-2xx response or transport failure
// from a data provider. StatusCode is 0 for network-level failures.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s request failed: %s", e.Provider, e.Message)
}

// NewUpstreamError creates an upstream failure for a provider
func NewUpstreamError(provider string, status int, message string) *UpstreamError {
	return &UpstreamError{Provider: provider, StatusCode: status, Message: message}
}

// ValidationError indicates malformed caller input (bad slug, bad query param)
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation failure for a request field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsRecoverable reports whether the error should be absorbed by
// substituting fallback data rather than surfaced as a 500.
func IsRecoverable(err error) bool {
	if errors.Is(err, ErrNoAPIKey) {
		return true
	}
	var ue *UpstreamError
	return errors.As(err, &ue)
}
