package ai

import (
	"context"
	"fmt"

	"wanderlust/internal/config"
)

// NewTextGenerator builds the provider selected in cfg. The returned close func releases client resources.
func NewTextGenerator(ctx context.Context, cfg config.LLMConfig) (TextGenerator, func() error, error) {
	switch cfg.Provider {
	case config.LLMGemini:
		p, err := NewGeminiProvider(ctx, cfg.GeminiKey, cfg.GeminiModel, DefaultSampling)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	case config.LLMOpenAI:
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIModel, DefaultSampling), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
