package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/ppiankov/satya/internal/model"
	"github.com/ppiankov/satya/internal/pipeline"
	"github.com/ppiankov/satya/internal/report"
	"github.com/ppiankov/satya/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	// useCache, noFooter and the engine flags are defined in verify.go and shared here
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify many claims or URLs from a file in parallel",
	Long: `Batch verifies one claim or article URL per line:
- Blank lines and lines starting with # are skipped
- Lines starting with http:// or https:// are fetched as articles
- Items run in parallel with a configurable worker count
- Article fetches are rate limited per host
- A JSON and a Markdown report is written for each verified item

Example:
  satya batch claims.txt
  satya batch claims.txt --concurrency 8 --output-dir ./reports
  satya batch urls.txt --cache --timeout 20m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./satya-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&useCache, "cache", false, "cache extracted pages on disk")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	addEngineFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency.Workers = concurrency
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}
	p.SetLimiter(worker.NewLimiter(cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.BurstSize))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Satya Batch Verification\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Engine:       %s\n", p.Provider().Name())
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "⚙️  Reading inputs from file...\n")
	inputs, err := worker.ReadInputsFromFile(file)
	if err != nil {
		return fmt.Errorf("read inputs: %w", err)
	}
	fmt.Fprintf(os.Stderr, "✓ Loaded %d items\n", len(inputs))
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "⚙️  Verifying with %d workers...\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "\n")

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	results := processor.Process(ctx, inputs)

	renderer := report.NewRenderer(cfg.Output.IncludeFooter)
	counts := make(map[model.Status]int)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		label := shorten(result.Input.Value(), 60)
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ [%d] %s: %s\n", result.Index+1, label, report.Describe(result.Error))
			continue
		}

		rep := report.New(result.Result.Content, result.Result.Verdict, p.Registry(), time.Now())

		slug := fmt.Sprintf("%03d-%s", result.Index+1, sanitizeFilename(reportSubject(result)))
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(rep, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ [%d] %s: failed to write JSON: %v\n", result.Index+1, label, err)
			continue
		}
		if err := renderer.RenderMarkdown(rep, mdPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ [%d] %s: failed to write Markdown: %v\n", result.Index+1, label, err)
			continue
		}

		successCount++
		counts[rep.Status]++
		fmt.Fprintf(os.Stderr, "%s [%d] %s (%s, %s)\n", report.StatusIcon(rep.Status), result.Index+1, label, rep.Status, rep.Confidence)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:         %d items\n", len(results))
	fmt.Fprintf(os.Stderr, "  Verified:      %d\n", successCount)
	for _, status := range []model.Status{model.StatusTrue, model.StatusFalse, model.StatusMisleading, model.StatusUnverifiable} {
		if counts[status] > 0 {
			fmt.Fprintf(os.Stderr, "    %-12s %d\n", status, counts[status])
		}
	}
	fmt.Fprintf(os.Stderr, "  Failures:      %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:        %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// reportSubject picks a readable name for the report files
func reportSubject(r *worker.VerifyResult) string {
	if r.Result != nil && r.Result.Content != nil && r.Result.Content.Title != "" {
		return r.Result.Content.Title
	}
	return r.Input.Value()
}

// sanitizeFilename turns s into a short, filesystem-safe slug
func sanitizeFilename(s string) string {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "https://"), "http://")

	var b strings.Builder
	dash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if runes := []rune(slug); len(runes) > 60 {
		slug = strings.TrimSuffix(string(runes[:60]), "-")
	}
	if slug == "" {
		slug = "item"
	}
	return slug
}

// shorten truncates s to n runes on a single line
func shorten(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if runes := []rune(s); len(runes) > n {
		return string(runes[:n-1]) + "…"
	}
	return s
}
