package model

import "time"

// Config is the full runtime configuration
type Config struct {
	HTTP           HTTPConfig        `yaml:"http" mapstructure:"http"`
	LLM            LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Cache          CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency    ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Server         ServerConfig      `yaml:"server" mapstructure:"server"`
	Output         OutputConfig      `yaml:"output" mapstructure:"output"`
	TrustedSources []TrustedSource   `yaml:"trusted_sources" mapstructure:"trusted_sources"`
}

// HTTPConfig controls article fetching
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	MaxChars      int           `yaml:"max_chars" mapstructure:"max_chars"`
	MinChars      int           `yaml:"min_chars" mapstructure:"min_chars"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// LLMConfig configures the reasoning engine
type LLMConfig struct {
	Provider     string        `yaml:"provider" mapstructure:"provider"`
	Model        string        `yaml:"model" mapstructure:"model"`
	APIKey       string        `yaml:"-" mapstructure:"api_key"` // Never written to disk
	BaseURL      string        `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	RetryBackoff time.Duration `yaml:"retry_backoff" mapstructure:"retry_backoff"`
	MaxTokens    int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature  float32       `yaml:"temperature" mapstructure:"temperature"`
}

// CacheConfig controls the optional extracted-page cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ConcurrencyConfig controls batch mode
type ConcurrencyConfig struct {
	Workers           int     `yaml:"workers" mapstructure:"workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Addr           string   `yaml:"addr" mapstructure:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      10 * time.Second,
			UserAgent:    "Mozilla/5.0 (compatible; Satya/0.1; +https://github.com/ppiankov/satya)",
			MaxBodyBytes: 2_000_000,
			MaxChars:     2500,
			MinChars:     20,
		},
		LLM: LLMConfig{
			Provider:     "gemini",
			Model:        "",
			Timeout:      30 * time.Second,
			RetryBackoff: 2 * time.Second,
			MaxTokens:    1500,
			Temperature:  0.2,
		},
		Cache: CacheConfig{
			Enabled: false,
			Dir:     ".satya-cache",
			TTL:     6 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers:           4,
			RequestsPerSecond: 2,
			BurstSize:         2,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:*", "https://*"},
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		TrustedSources: DefaultTrustedSources(),
	}
}
