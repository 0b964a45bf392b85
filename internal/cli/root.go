package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ppiankov/satya/internal/llm"
	"github.com/ppiankov/satya/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	version = "dev"
)

// configKeys are bound to SATYA_* environment variables so that env-only
// settings survive viper.Unmarshal without a config file
var configKeys = []string{
	"http.timeout",
	"http.user_agent",
	"http.max_body_bytes",
	"http.max_chars",
	"http.min_chars",
	"http.respect_robots",
	"http.http_proxy",
	"http.https_proxy",
	"http.no_proxy",
	"llm.provider",
	"llm.model",
	"llm.api_key",
	"llm.base_url",
	"llm.timeout",
	"llm.retry_backoff",
	"llm.max_tokens",
	"llm.temperature",
	"cache.enabled",
	"cache.dir",
	"cache.ttl",
	"concurrency.workers",
	"concurrency.requests_per_second",
	"concurrency.burst_size",
	"server.addr",
	"output.verbose",
	"output.include_footer",
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "satya",
	Short: "Satya - AI-assisted news claim verification",
	Long: `Satya checks a news claim or article against a reasoning engine and
returns a verdict: TRUE, FALSE, MISLEADING or UNVERIFIABLE, with a
confidence score, an analysis, red flags and trusted outlets to
cross-check with.

Satya is an assistant, not an authority. Always confirm important
news with the recommended sources.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the string printed by the version command
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number for Satya.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("satya %s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.satya/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in .env, the config file and ENV variables
func initConfig() {
	// .env is optional; real environment variables take precedence
	if err := godotenv.Load(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Loaded environment from .env\n")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.satya")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// SATYA_LLM_PROVIDER -> llm.provider
	viper.SetEnvPrefix("SATYA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for _, key := range configKeys {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig layers file and environment settings over the defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose
	return cfg, nil
}

// resolveCredentials fills the API key (and the Ollama address) from the
// conventional provider variables when the config left them empty
func resolveCredentials(cfg *model.Config) {
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = llm.APIKeyFromEnv(cfg.LLM.Provider)
	}
	if strings.EqualFold(cfg.LLM.Provider, "ollama") && cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}
}

// keyHint names the variable a user should set for the configured provider
func keyHint(provider string) string {
	switch strings.ToLower(provider) {
	case "openai":
		return "OPENAI_API_KEY"
	case "anthropic", "claude":
		return "ANTHROPIC_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}
