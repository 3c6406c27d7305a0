package llm

import (
	"log/slog"

	"github.com/alkime/stylepost/internal/config"
)

// New constructs the invoker for the configured provider. It fails with
// ErrMissingAPIKey before any network call when the provider's key is empty.
func New(cfg *config.Config, log *slog.Logger) (Invoker, error) {
	apiKey := cfg.APIKey()
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if cfg.Provider == config.ProviderAnthropic {
		return NewAnthropicInvoker(apiKey, cfg.Model, cfg.MaxTokens, log), nil
	}

	return NewOpenAIInvoker(apiKey, cfg.Model, cfg.SearchModel, cfg.MaxTokens, log), nil
}
