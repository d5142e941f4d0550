package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/mutabay/readme-agent/internal/domain/models"
	"github.com/mutabay/readme-agent/internal/domain/ports"
)

// Provider talks to the Gemini API. Every Generate call builds a fresh
// GenerativeModel so per-call temperature and token limits never leak
// between calls.
type Provider struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewProvider(ctx context.Context, apiKey, model string, timeout time.Duration) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Provider{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

func (p *Provider) Name() string {
	return "gemini"
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ports.GenerateOptions) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(opts.Temperature)
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation: %w", err)
	}

	return extractText(resp)
}

func (p *Provider) TestConnection(ctx context.Context) models.ConnectionStatus {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	status := models.ConnectionStatus{Provider: p.Name(), Model: p.model}

	it := p.client.ListModels(ctx)
	for {
		info, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			status.Error = err.Error()
			return status
		}
		if len(status.Models) < 10 {
			status.Models = append(status.Models, info.Name)
		}
	}

	status.Connected = true
	return status
}

func (p *Provider) Close() error {
	return p.client.Close()
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned an empty response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	if b.Len() == 0 {
		return "", errors.New("gemini response contained no text parts")
	}
	return b.String(), nil
}
