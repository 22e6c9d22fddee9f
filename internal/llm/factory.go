package llm

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/iqfieldbot/internal/store"
)

// ErrNoProvider is returned by NewProvider when no provider is configured
// and none could be discovered. Callers fall back to the static question
// bank.
var ErrNoProvider = errors.New("no LLM provider configured")

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with timeout, retry, tracing and logging
// middleware. eventRepo may be nil, in which case requests are only logged.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Provider == "" || cfg.Provider == ProviderAuto {
		discovered, ok := DiscoverConfig(cfg)
		if !ok {
			return nil, ErrNoProvider
		}
		cfg = discovered
		logger.Info("discovered LLM provider", zap.String("provider", cfg.Provider))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	case "none":
		return nil, ErrNoProvider
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → timeout → retry → tracing → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo, logger)
	traced := WithTracing(logged, cfg.Provider)
	retried := WithRetry(traced, cfg.Retry)

	return WithTimeout(retried, cfg.Timeout), nil
}
