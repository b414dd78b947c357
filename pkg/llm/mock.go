package llm

import (
	"context"
)

// MockClient is a configurable Client for tests.
type MockClient struct {
	Response string
	Err      error
	// Calls records the prompts passed to GenerateResponse.
	Calls []string
}

// GenerateResponse returns the configured response or error.
func (m *MockClient) GenerateResponse(ctx context.Context, prompt string, systemMessage string) (string, error) {
	m.Calls = append(m.Calls, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// GetModel returns a fixed model name.
func (m *MockClient) GetModel() string {
	return "mock-model"
}
