// Package llm is the transport layer behind the response classification
// client: a provider-neutral request/response model with adapters for the
// hosted LLM APIs, schema validation, retries and request logging.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a completion for a Request.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set, Content is JSON that validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier requests are sent to.
	ModelID() string
}

// Request is a single structured-output call.
type Request struct {
	// System sets the model's role and rules.
	System string

	// Messages is the conversation. Classification calls send one user message.
	Messages []Message

	// Schema, when non-nil, selects the provider's native structured output
	// mode and is used to validate the reply.
	Schema *Schema

	MaxTokens int

	// Temperature in [0,1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one conversation entry.
type Message struct {
	Role    Role
	Content string
}

// Role identifies who authored a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured output.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "response-classification".
	// Anthropic uses it as the tool name, OpenAI as the schema name.
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the provider's reply.
type Response struct {
	// Content is validated JSON when a Schema was requested, raw text otherwise.
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is one of "end", "max_tokens", "error".
	StopReason string
}

// Usage is the token accounting of one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
