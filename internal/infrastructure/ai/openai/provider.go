package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/mutabay/readme-agent/internal/domain/models"
	"github.com/mutabay/readme-agent/internal/domain/ports"
)

// Provider speaks the OpenAI chat-completions API. It also serves Ollama,
// which exposes the same API under its /v1 path, by overriding the base
// URL. The provider name distinguishes the two in logs and health checks.
type Provider struct {
	client  openai.Client
	name    string
	model   string
	timeout time.Duration
}

// NewProvider builds a provider against api.openai.com.
func NewProvider(apiKey, model string, timeout time.Duration) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("openai API key is not configured")
	}
	return &Provider{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		name:    "openai",
		model:   model,
		timeout: timeout,
	}, nil
}

// NewOllamaProvider builds a provider against a local Ollama server.
// Ollama ignores API keys but the client requires one to be set.
func NewOllamaProvider(baseURL, model string, timeout time.Duration) (*Provider, error) {
	if baseURL == "" {
		return nil, errors.New("ollama base URL is not configured")
	}
	return &Provider{
		client: openai.NewClient(
			option.WithAPIKey("ollama"),
			option.WithBaseURL(strings.TrimSuffix(baseURL, "/")+"/v1"),
		),
		name:    "ollama",
		model:   model,
		timeout: timeout,
	}, nil
}

func (p *Provider) Name() string {
	return p.name
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ports.GenerateOptions) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(float64(opts.Temperature)),
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%s generation: %w", p.name, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%s returned no completion choices", p.name)
	}

	return completion.Choices[0].Message.Content, nil
}

func (p *Provider) TestConnection(ctx context.Context) models.ConnectionStatus {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	status := models.ConnectionStatus{Provider: p.name, Model: p.model}

	page, err := p.client.Models.List(ctx)
	if err != nil {
		status.Error = err.Error()
		return status
	}

	for _, m := range page.Data {
		if len(status.Models) == 10 {
			break
		}
		status.Models = append(status.Models, m.ID)
	}

	status.Connected = true
	return status
}
