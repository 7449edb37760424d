// Package llm abstracts chat-completion providers behind a single interface.
package llm

import "context"

// Provider is the interface all LLM backends implement.
type Provider interface {
	// Complete sends a completion request and returns the generated response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the provider identifier.
	Name() string
}
