// Package llm sends rendered prompts to a hosted language model and returns
// either free text or a schema-validated structured object.
package llm

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrMissingAPIKey is returned before any call when no credential is configured.
	ErrMissingAPIKey = errors.New("API key required: set OPENAI_API_KEY or ANTHROPIC_API_KEY, or store one with `stylepost config set-key`")
	// ErrEmptyResponse is returned when the model produced no usable content.
	ErrEmptyResponse = errors.New("empty response from model")
	// ErrSchemaMismatch is returned when a structured response does not match its schema.
	ErrSchemaMismatch = errors.New("response does not match schema")
	// ErrPausedTurn is returned when the model paused a long server-side tool turn before answering.
	ErrPausedTurn = errors.New("model paused its turn before finishing (stop reason pause_turn)")
)

// Agent is a named persona: system instructions plus the capabilities it may use.
type Agent struct {
	Name         string
	Instructions string
	WebSearch    bool
}

// Request is one prompt-and-response round trip.
type Request struct {
	Agent  Agent
	Prompt string
	// Schema, when set, asks for a structured response validated against it.
	Schema *Schema
}

// Response is the decoded completion. Structured is set only for schema requests;
// Text always carries the raw completion (the JSON document for schema requests).
type Response struct {
	Text       string
	Structured json.RawMessage
}

// Invoker wraps a single call to a hosted model.
type Invoker interface {
	Invoke(ctx context.Context, req Request) (Response, error)
}

// InvokerFunc adapts a plain function to the Invoker interface.
type InvokerFunc func(ctx context.Context, req Request) (Response, error)

// Invoke calls f.
func (f InvokerFunc) Invoke(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}
