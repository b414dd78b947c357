package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/latefee/latefee/pkg/config"
)

// NewProvider creates the chat client selected by configuration.
// Returns the Client interface to enable dependency injection of mocks.
func NewProvider(cfg *config.LLMConfig, logger *zap.Logger) (Client, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIClient(&Config{
			Endpoint: cfg.BaseURL,
			Model:    cfg.Model,
			APIKey:   cfg.OpenAIAPIKey,
		}, logger)
	case "anthropic":
		return NewAnthropicClient(&Config{
			Model:  cfg.Model,
			APIKey: cfg.AnthropicAPIKey,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
