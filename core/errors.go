package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies provider failures for the fallback chain.
type ErrorKind string

const (
	// ErrKindTimeout marks a call that exceeded its deadline.
	ErrKindTimeout ErrorKind = "timeout"
	// ErrKindTransport marks a network or server-side failure.
	ErrKindTransport ErrorKind = "transport"
	// ErrKindMalformedResponse marks provider output that failed schema validation.
	ErrKindMalformedResponse ErrorKind = "malformed_response"
	// ErrKindAuthFailure marks rejected credentials.
	ErrKindAuthFailure ErrorKind = "auth_failure"
)

// ProviderError wraps a failure from one provider adapter. These errors are
// adapter-local: the orchestrator absorbs them through the fallback chain and
// they are never surfaced to the caller.
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Err      error
}

// NewProviderError wraps err with the provider name and failure kind.
func NewProviderError(provider string, kind ErrorKind, err error) *ProviderError {
	return &ProviderError{Provider: provider, Kind: kind, Err: err}
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("provider %s: %s", e.Provider, e.Kind)
	}
	return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Kind, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *ProviderError) Unwrap() error { return e.Err }

// ErrorKindOf returns the ProviderError kind carried by err, or "" when err
// is not a provider error.
func ErrorKindOf(err error) ErrorKind {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// ValidationError reports a malformed inbound request. It is the only error
// surfaced to external callers of the chat engine.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
