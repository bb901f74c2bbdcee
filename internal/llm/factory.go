package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/codemaster/internal/store"
)

// NewProvider builds the configured backend and wraps it so a call runs
// timeout → retry → metering → event logging → vendor. events may be nil,
// in which case nothing is recorded.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	base, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if events != nil {
		p = WithLogging(p, cfg.Provider, events)
	}
	return WithTimeout(WithRetry(WithMetering(p), cfg.Retry), cfg.Timeout), nil
}

func newBackend(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiProvider(ctx, cfg.Gemini)
	case "anthropic":
		return NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		return NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		return NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewPlaceholderProvider(), nil
	}
	return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
}
