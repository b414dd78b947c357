// Package llm provides chat-completion clients for narrative generation,
// with OpenAI-compatible and Anthropic backends behind one interface.
package llm

import (
	"context"
)

// Client defines the interface for chat-completion operations.
// Use this interface for dependency injection to enable mocking in tests.
type Client interface {
	// GenerateResponse generates a chat completion for the prompt under the
	// given system message.
	GenerateResponse(ctx context.Context, prompt string, systemMessage string) (string, error)

	// GetModel returns the configured model name.
	GetModel() string
}

// Ensure implementations satisfy Client at compile time.
var (
	_ Client = (*OpenAIClient)(nil)
	_ Client = (*AnthropicClient)(nil)
	_ Client = (*MockClient)(nil)
)
