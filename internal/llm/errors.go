package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// transient is implemented by errors that a repeat of the same request may
// clear.
type transient interface {
	Transient() bool
}

// ErrRateLimit is returned when the provider answered 429.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error   { return e.Err }
func (e *ErrRateLimit) Transient() bool { return true }

// ErrInvalidResponse is returned when output does not match the requested
// schema. Content holds the rejected output so callers can show it back to
// the model when re-asking; the same request is not retried.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error   { return e.Err }
func (e *ErrInvalidResponse) Transient() bool { return false }

// ErrProviderUnavailable is returned when the provider cannot be reached or
// fails server-side.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error   { return e.Err }
func (e *ErrProviderUnavailable) Transient() bool { return true }

// ErrMaxTokensExceeded is returned when the reply was cut off at MaxTokens.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

func (e *ErrMaxTokensExceeded) Transient() bool { return false }
