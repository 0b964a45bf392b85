package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const (
	// GeminiBaseURL is Google's OpenAI-compatible endpoint
	GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

	// DefaultGeminiModel is used when no model is configured for gemini
	DefaultGeminiModel = "gemini-2.5-flash"
)

// OpenAIProvider implements Provider over the Chat Completions API.
// It also serves Gemini through Google's compatible endpoint.
type OpenAIProvider struct {
	client *openai.Client
	name   string
	model  string
	config Config
}

// NewOpenAIProvider creates an OpenAI provider
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	return newChatProvider("openai", openai.GPT4oMini, config)
}

// NewGeminiProvider creates a Gemini provider on the OpenAI-compatible endpoint
func NewGeminiProvider(config Config) (*OpenAIProvider, error) {
	if config.BaseURL == "" {
		config.BaseURL = GeminiBaseURL
	}
	return newChatProvider("gemini", DefaultGeminiModel, config)
}

func newChatProvider(name, defaultModel string, config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", name, ErrMissingAPIKey)
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(config.BaseURL, "/")
	}
	clientConfig.HTTPClient = config.httpClient()

	model := config.Model
	if model == "" {
		model = defaultModel
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		name:   name,
		model:  model,
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return p.name
}

// Model returns the model used for completions
func (p *OpenAIProvider) Model() string {
	return p.model
}

// Ping lists models, the cheapest authenticated call
func (p *OpenAIProvider) Ping(ctx context.Context) error {
	if _, err := p.client.ListModels(ctx); err != nil {
		return fmt.Errorf("%s API check failed: %w", p.name, err)
	}
	return nil
}

// Generate sends the prompt as a single user turn
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   p.config.maxTokens(),
		Temperature: p.config.Temperature,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%s API error: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
