package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ppiankov/satya/internal/model"
	"github.com/ppiankov/satya/internal/prompt"
	"github.com/ppiankov/satya/internal/util"
)

// Provider is a reasoning engine that turns a prompt into free text
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate sends one prompt and returns the raw completion text
	Generate(ctx context.Context, prompt string) (string, error)

	// Ping checks that the provider is configured and reachable
	Ping(ctx context.Context) error
}

// ErrMissingAPIKey is returned when a hosted provider is built without a credential
var ErrMissingAPIKey = errors.New("API key is required")

// Config holds provider configuration
type Config struct {
	// Provider name: "gemini", "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific); empty selects the provider default
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL overrides the provider endpoint
	BaseURL string

	// MaxTokens for response generation
	MaxTokens int

	// Temperature for sampling
	Temperature float32

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// ConfigFromModel converts the application config into provider config
func ConfigFromModel(llmCfg model.LLMConfig, httpCfg model.HTTPConfig) Config {
	return Config{
		Provider:    llmCfg.Provider,
		Model:       llmCfg.Model,
		APIKey:      llmCfg.APIKey,
		BaseURL:     llmCfg.BaseURL,
		MaxTokens:   llmCfg.MaxTokens,
		Temperature: llmCfg.Temperature,
		HTTPProxy:   httpCfg.HTTPProxy,
		HTTPSProxy:  httpCfg.HTTPSProxy,
		NoProxy:     httpCfg.NoProxy,
	}
}

func (c Config) maxTokens() int {
	if c.MaxTokens <= 0 {
		return 1500
	}
	return c.MaxTokens
}

// httpClient has no timeout of its own; callers bound each call with a context
func (c Config) httpClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(c.HTTPProxy, c.HTTPSProxy, c.NoProxy),
		},
	}
}

// APIError is a non-2xx answer from a provider endpoint
type APIError struct {
	Provider   string
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s API error (%d): %s - %s", e.Provider, e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("%s API error (%d): %s", e.Provider, e.StatusCode, e.Message)
}

// systemPrompt is shared by every provider
var systemPrompt = prompt.SystemPrompt
