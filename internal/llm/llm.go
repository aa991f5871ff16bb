package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Client abstracts chat-completion providers for plant recommendations.
type Client interface {
	// Complete sends a single user prompt and returns the provider's raw
	// JSON response body.
	Complete(ctx context.Context, prompt string) (json.RawMessage, error)
	// Configured reports whether the client has credentials to make calls.
	Configured() bool
}

// ErrNotConfigured is returned before any network I/O when credentials are missing.
var ErrNotConfigured = errors.New("llm service not configured")

// ErrTimeout is returned when the upstream call exceeds its deadline.
var ErrTimeout = errors.New("llm request timed out")

// StatusError carries a non-2xx upstream status and response body.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm upstream status %d: %s", e.Code, e.Body)
}
