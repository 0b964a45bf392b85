package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/satya/internal/llm"
	"github.com/ppiankov/satya/internal/model"
	"github.com/ppiankov/satya/internal/pipeline"
	"github.com/ppiankov/satya/internal/report"
	"github.com/spf13/cobra"
)

var (
	pingTimeout time.Duration
	pingSample  bool
)

// pingCmd represents the ping command
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check connectivity with the reasoning engine",
	Long: `Ping checks that the configured provider is reachable and accepts the
credential. With --sample it also verifies a well-known claim end to end.

Example:
  satya ping
  satya ping --provider openai --sample`,
	Args: cobra.NoArgs,
	RunE: runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)

	pingCmd.Flags().DurationVar(&pingTimeout, "timeout", 30*time.Second, "connectivity check timeout")
	pingCmd.Flags().BoolVar(&pingSample, "sample", false, "also verify a sample claim")
	addEngineFlags(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}

	if llm.RequiresAPIKey(cfg.LLM.Provider) && cfg.LLM.APIKey == "" {
		return fmt.Errorf("no API key configured: set %s or SATYA_LLM_API_KEY", keyHint(cfg.LLM.Provider))
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "⚙️  Checking %s...\n", provider.Name())
	start := time.Now()
	if err := provider.Ping(ctx); err != nil {
		return fmt.Errorf("%s is not reachable: %w", provider.Name(), err)
	}
	fmt.Fprintf(os.Stderr, "✓ %s is reachable (%v)\n", provider.Name(), time.Since(start).Round(time.Millisecond))

	if !pingSample {
		return nil
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "⚙️  Verifying sample claim...\n\n")
	sampleCtx, sampleCancel := context.WithTimeout(context.Background(), pingTimeout)
	defer sampleCancel()

	result, err := p.Run(sampleCtx, model.TextInput(model.SampleClaim))
	if err != nil {
		return err
	}
	report.PrintVerdict(cmd.OutOrStdout(), result.Content, result.Verdict)
	return nil
}
