// Connectivity test: sends a well-known claim through the full pipeline
// and prints the parsed verdict next to the raw engine reply
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/ppiankov/satya/internal/llm"
	"github.com/ppiankov/satya/internal/model"
	"github.com/ppiankov/satya/internal/pipeline"
	"github.com/ppiankov/satya/internal/report"
)

func main() {
	provider := flag.String("provider", "gemini", "LLM provider (gemini, openai, anthropic, ollama)")
	modelName := flag.String("model", "", "LLM model name")
	claim := flag.String("claim", model.SampleClaim, "claim to verify")
	raw := flag.Bool("raw", false, "print the raw engine reply")
	flag.Parse()

	_ = godotenv.Load()

	cfg := model.DefaultConfig()
	cfg.LLM.Provider = *provider
	cfg.LLM.Model = *modelName
	cfg.LLM.APIKey = llm.APIKeyFromEnv(*provider)
	if *provider == "ollama" {
		cfg.LLM.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}

	fmt.Println("=== Satya Connectivity Test ===")
	fmt.Println()
	fmt.Printf("Provider: %s\n", *provider)
	fmt.Printf("Claim:    %s\n", *claim)
	fmt.Println(strings.Repeat("-", 60))

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		report.PrintError(os.Stderr, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	start := time.Now()
	result, err := p.Run(ctx, model.TextInput(*claim))
	if err != nil {
		report.PrintError(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("✓ Reply in %v\n\n", time.Since(start).Round(time.Millisecond))
	if *raw {
		fmt.Println(result.Raw)
		fmt.Println(strings.Repeat("-", 60))
	}
	report.PrintVerdict(os.Stdout, result.Content, result.Verdict)
}
