package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFilter is returned when a caller asks for a category that is not
// part of the storefront's category set. It is a programming error and is
// never sent to the network.
var ErrInvalidFilter = errors.New("invalid category filter")

// ErrorKind classifies a failed catalog fetch
type ErrorKind string

const (
	// KindNetwork means the request never reached the service or no response came back
	KindNetwork ErrorKind = "network"

	// KindTimeout means the request exceeded the configured timeout
	KindTimeout ErrorKind = "timeout"

	// KindMalformed means a response arrived but not in the expected shape
	KindMalformed ErrorKind = "malformed_response"

	// KindApplication means the service answered and signaled failure
	KindApplication ErrorKind = "application"
)

// FetchError describes a settled catalog fetch failure
type FetchError struct {
	// Kind categorizes the error
	Kind ErrorKind `json:"kind"`

	// Message provides human-readable error description
	Message string `json:"message"`

	// Filter is the filter the failed request was issued for
	Filter Filter `json:"filter,omitempty"`

	// StatusCode for HTTP-related errors
	StatusCode int `json:"status_code,omitempty"`

	// Cause is the underlying error
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *FetchError) Error() string {
	parts := []string{fmt.Sprintf("kind=%s", e.Kind)}

	if e.Filter != "" {
		parts = append(parts, fmt.Sprintf("filter=%s", e.Filter))
	}
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Is matches another *FetchError of the same kind
func (e *FetchError) Is(target error) bool {
	if fe, ok := target.(*FetchError); ok {
		return e.Kind == fe.Kind
	}
	return false
}

// IsRetryable reports whether retrying the same request could succeed
func (e *FetchError) IsRetryable() bool {
	switch e.Kind {
	case KindNetwork, KindTimeout:
		return true
	default:
		return false
	}
}

// UserMessage is the short text shown to a shopper
func (e *FetchError) UserMessage() string {
	switch e.Kind {
	case KindNetwork:
		return "Could not reach the catalog service"
	case KindTimeout:
		return "The catalog service took too long to answer"
	case KindMalformed:
		return "The catalog service sent an unexpected response"
	case KindApplication:
		if e.Message != "" {
			return "The catalog service reported an error: " + e.Message
		}
		return "The catalog service reported an error"
	default:
		return "Could not load products"
	}
}

// Error constructors

// NewFetchError creates a fetch error without an underlying cause
func NewFetchError(kind ErrorKind, message string, filter Filter) *FetchError {
	return &FetchError{Kind: kind, Message: message, Filter: filter}
}

// NewFetchErrorWithCause creates a fetch error wrapping cause
func NewFetchErrorWithCause(kind ErrorKind, message string, filter Filter, cause error) *FetchError {
	return &FetchError{Kind: kind, Message: message, Filter: filter, Cause: cause}
}

// Sentinel values for errors.Is checks by kind
var (
	ErrNetwork     = &FetchError{Kind: KindNetwork}
	ErrTimeout     = &FetchError{Kind: KindTimeout}
	ErrMalformed   = &FetchError{Kind: KindMalformed}
	ErrApplication = &FetchError{Kind: KindApplication}
)

// AsFetchError normalizes any error from a Source into a *FetchError.
// An error without a filter is copied before the filter is set.
// Context deadline errors become KindTimeout; anything unclassified is
// treated as a network failure.
func AsFetchError(err error, filter Filter) *FetchError {
	if err == nil {
		return nil
	}

	var fe *FetchError
	if errors.As(err, &fe) {
		if fe.Filter != "" {
			return fe
		}
		// fe may be a shared sentinel
		c := *fe
		c.Filter = filter
		return &c
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewFetchErrorWithCause(KindTimeout, "request timed out", filter, err)
	}

	return NewFetchErrorWithCause(KindNetwork, "request failed", filter, err)
}

// IsRetryableError checks if an error is a retryable fetch error
func IsRetryableError(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.IsRetryable()
	}
	return false
}
