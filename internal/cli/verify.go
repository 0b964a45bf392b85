package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/ppiankov/satya/internal/model"
	"github.com/ppiankov/satya/internal/pipeline"
	"github.com/ppiankov/satya/internal/report"
	"github.com/ppiankov/satya/internal/sources"
	"github.com/spf13/cobra"
)

var (
	verifyURL     string
	outJSON       string
	outMD         string
	verifyTimeout time.Duration
	showPrompt    bool
	llmProvider   string
	llmModel      string
	useCache      bool
	noFooter      bool
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [text...]",
	Short: "Verify a news claim or article",
	Long: `Verify sends a claim (or the text of an article) to the reasoning
engine and prints the verdict.

Pass the claim as arguments, "-" to read it from stdin, or --url to fetch
and extract an article first.

Example:
  satya verify "PM Modi is the current Prime Minister of India"
  satya verify --url https://www.thehindu.com/news/national/some-story
  cat claim.txt | satya verify - --json report.json --md report.md
  satya verify "..." --provider openai --model gpt-4o-mini`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyURL, "url", "", "news article URL to fetch and verify")
	verifyCmd.Flags().StringVar(&outJSON, "json", "", "output JSON report path (optional)")
	verifyCmd.Flags().StringVar(&outMD, "md", "", "output Markdown report path (optional)")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 2*time.Minute, "overall verification timeout")
	verifyCmd.Flags().BoolVar(&showPrompt, "show-prompt", false, "print the prompt sent to the engine (stderr)")
	verifyCmd.Flags().BoolVar(&useCache, "cache", false, "cache extracted pages on disk")
	verifyCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	addEngineFlags(verifyCmd)
}

// addEngineFlags registers the reasoning engine overrides on cmd
func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&llmProvider, "provider", "", "LLM provider (gemini, openai, anthropic, ollama)")
	cmd.Flags().StringVar(&llmModel, "model", "", "LLM model name")
}

// commandConfig loads the layered config and applies the flags set on cmd
func commandConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.LLM.Provider = llmProvider
	}
	if flags.Changed("model") {
		cfg.LLM.Model = llmModel
	}
	if flags.Lookup("cache") != nil && flags.Changed("cache") {
		cfg.Cache.Enabled = useCache
	}
	if flags.Lookup("no-footer") != nil && flags.Changed("no-footer") {
		cfg.Output.IncludeFooter = !noFooter
	}

	resolveCredentials(cfg)
	if cfg.LLM.APIKey == "" && !strings.EqualFold(cfg.LLM.Provider, "ollama") && cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "No API key found; set %s or SATYA_LLM_API_KEY\n", keyHint(cfg.LLM.Provider))
	}
	return cfg, nil
}

// verifyInput turns arguments and flags into a single content input
func verifyInput(args []string, stdin io.Reader) (model.ContentInput, error) {
	if verifyURL != "" {
		if len(args) > 0 {
			return model.ContentInput{}, fmt.Errorf("pass either text or --url, not both")
		}
		return model.URLInput(verifyURL), nil
	}

	if len(args) == 0 {
		return model.ContentInput{}, fmt.Errorf("nothing to verify: pass text, \"-\" for stdin, or --url")
	}

	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return model.ContentInput{}, fmt.Errorf("read stdin: %w", err)
		}
		return model.TextInput(string(data)), nil
	}

	return model.TextInput(strings.Join(args, " ")), nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	input, err := verifyInput(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Input: %s\n", input.Kind)
		fmt.Fprintf(os.Stderr, "Engine: %s\n", p.Provider().Name())
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", verifyTimeout)
		fmt.Fprintln(os.Stderr)
		if input.Kind == model.InputURL {
			fmt.Fprintf(os.Stderr, "⚙️  Fetching article...\n")
		}
		fmt.Fprintf(os.Stderr, "⚙️  Asking the reasoning engine...\n")
	}

	result, err := p.Run(ctx, input)
	if err != nil {
		return err
	}

	if showPrompt {
		fmt.Fprintf(os.Stderr, "%s\n\n", result.Prompt)
	}
	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d characters (%s)\n", len([]rune(result.Content.Text)), result.Content.Method)
		fmt.Fprintf(os.Stderr, "✓ Parsed verdict\n")
		fmt.Fprintln(os.Stderr)
	}

	report.PrintVerdict(cmd.OutOrStdout(), result.Content, result.Verdict)

	return writeReports(cfg, p.Registry(), result, outJSON, outMD)
}

// writeReports renders the optional JSON and Markdown files
func writeReports(cfg *model.Config, registry *sources.Registry, result *pipeline.Result, jsonPath, mdPath string) error {
	if jsonPath == "" && mdPath == "" {
		return nil
	}

	rep := report.New(result.Content, result.Verdict, registry, time.Now())
	renderer := report.NewRenderer(cfg.Output.IncludeFooter)

	if jsonPath != "" {
		if err := renderer.RenderJSON(rep, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON report: %s\n", jsonPath)
		}
	}
	if mdPath != "" {
		if err := renderer.RenderMarkdown(rep, mdPath); err != nil {
			return fmt.Errorf("render Markdown: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown report: %s\n", mdPath)
		}
	}
	return nil
}
