package llm

import (
	"fmt"
	"os"
	"strings"
)

// NewProvider creates a provider based on configuration.
// Hosted providers fail fast when the API key is missing.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "gemini", "google", "":
		return NewGeminiProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: gemini, openai, anthropic, ollama)", config.Provider)
	}
}

// RequiresAPIKey reports whether the named provider needs a credential
func RequiresAPIKey(provider string) bool {
	return strings.ToLower(provider) != "ollama"
}

// providerKeyEnv maps providers to their conventional credential variables
var providerKeyEnv = map[string]string{
	"gemini":    "GEMINI_API_KEY",
	"google":    "GEMINI_API_KEY",
	"":          "GEMINI_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"claude":    "ANTHROPIC_API_KEY",
}

// APIKeyFromEnv resolves a credential from the environment.
// SATYA_LLM_API_KEY wins over the provider-specific variable.
func APIKeyFromEnv(provider string) string {
	if key := strings.TrimSpace(os.Getenv("SATYA_LLM_API_KEY")); key != "" {
		return key
	}
	if name, ok := providerKeyEnv[strings.ToLower(provider)]; ok {
		return strings.TrimSpace(os.Getenv(name))
	}
	return ""
}
