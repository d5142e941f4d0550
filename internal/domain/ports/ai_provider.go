package ports

import (
	"context"

	"github.com/mutabay/readme-agent/internal/domain/models"
)

// GenerateOptions are the per-call tuning knobs for text generation.
type GenerateOptions struct {
	Temperature float32
	MaxTokens   int
}

// AIProvider is the single capability interface over language-model
// backends (Gemini, OpenAI, Ollama). Implementations are selected at
// construction time by configuration; callers never inspect the concrete
// type. Generate blocks until the provider answers or the call times out;
// there is no retry logic anywhere, timeouts surface as errors that each
// pipeline stage converts into its documented fallback.
type AIProvider interface {
	Name() string
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	TestConnection(ctx context.Context) models.ConnectionStatus
}
