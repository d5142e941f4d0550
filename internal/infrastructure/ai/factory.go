package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/mutabay/readme-agent/internal/config"
	"github.com/mutabay/readme-agent/internal/domain/ports"
	"github.com/mutabay/readme-agent/internal/infrastructure/ai/gemini"
	"github.com/mutabay/readme-agent/internal/infrastructure/ai/openai"
)

// NewProvider builds the AI provider selected by the configuration.
func NewProvider(ctx context.Context, cfg *config.Config) (ports.AIProvider, error) {
	timeout := time.Duration(cfg.LLMTimeoutSeconds) * time.Second

	switch cfg.Provider {
	case "gemini":
		return gemini.NewProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, timeout)
	case "openai":
		return openai.NewProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel, timeout)
	case "ollama":
		return openai.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel, timeout)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
