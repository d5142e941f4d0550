package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutabay/readme-agent/internal/config"
)

func baseConfig(provider string) *config.Config {
	return &config.Config{
		Provider:          provider,
		GeminiModel:       "gemini-1.5-flash",
		OpenAIModel:       "gpt-4o-mini",
		OllamaModel:       "llama3.1:8b",
		OllamaBaseURL:     "http://localhost:11434",
		LLMTimeoutSeconds: 120,
	}
}

func TestNewProviderOllama(t *testing.T) {
	provider, err := NewProvider(context.Background(), baseConfig("ollama"))
	require.NoError(t, err)
	assert.Equal(t, "ollama", provider.Name())
}

func TestNewProviderOpenAI(t *testing.T) {
	cfg := baseConfig("openai")
	cfg.OpenAIAPIKey = "sk-test"

	provider, err := NewProvider(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "openai", provider.Name())
}

func TestNewProviderMissingCredentials(t *testing.T) {
	_, err := NewProvider(context.Background(), baseConfig("openai"))
	assert.Error(t, err)

	_, err = NewProvider(context.Background(), baseConfig("gemini"))
	assert.Error(t, err)
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider(context.Background(), baseConfig("claude"))
	assert.Error(t, err)
}
