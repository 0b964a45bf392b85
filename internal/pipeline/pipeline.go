package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ppiankov/satya/internal/cache"
	"github.com/ppiankov/satya/internal/extract"
	"github.com/ppiankov/satya/internal/llm"
	"github.com/ppiankov/satya/internal/model"
	"github.com/ppiankov/satya/internal/parse"
	"github.com/ppiankov/satya/internal/prompt"
	"github.com/ppiankov/satya/internal/sources"
)

// Extractor turns an input into analyzable text
type Extractor interface {
	Extract(ctx context.Context, input model.ContentInput) (*model.ExtractedContent, error)
}

// Engine answers a prompt with free text
type Engine interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// Pipeline orchestrates one verification: extract, build prompt, ask, parse.
// It holds no per-call state and is safe for concurrent use.
type Pipeline struct {
	extractor Extractor
	engine    Engine
	parser    *parse.Parser
	registry  *sources.Registry
	fetcher   *extract.Fetcher // nil when the extractor was injected
	provider  llm.Provider     // nil when the engine was injected
}

// Result carries every intermediate of a verification
type Result struct {
	Content *model.ExtractedContent
	Prompt  string
	Raw     string
	Verdict *model.Verdict
}

// NewPipeline wires the production components from cfg.
// A missing credential fails here, not on the first Verify.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	registry := sources.Default()
	if len(cfg.TrustedSources) > 0 {
		r, err := sources.NewRegistry(cfg.TrustedSources)
		if err != nil {
			return nil, fmt.Errorf("trusted sources: %w", err)
		}
		registry = r
	}

	if llm.RequiresAPIKey(cfg.LLM.Provider) && cfg.LLM.APIKey == "" {
		return nil, model.EngineUnavailable("API key not configured", llm.ErrMissingAPIKey)
	}
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		return nil, model.EngineUnavailable("invalid reasoning engine configuration", err)
	}

	fetcher := extract.NewFetcher(cfg.HTTP)
	extractor := extract.NewExtractor(fetcher, registry, cfg.HTTP)
	extractor.SetWarnings(os.Stderr)
	if cfg.Cache.Enabled {
		store := cache.NewLayeredCache(cfg.Cache.Dir, cfg.Cache.TTL)
		extractor.SetPageCache(cache.NewPages(store, cfg.Cache.TTL))
	}

	p := New(extractor, llm.NewClient(provider, cfg.LLM.Timeout, cfg.LLM.RetryBackoff), registry)
	p.fetcher = fetcher
	p.provider = provider
	return p, nil
}

// New assembles a pipeline from already-built components
func New(extractor Extractor, engine Engine, registry *sources.Registry) *Pipeline {
	if registry == nil {
		registry = sources.Default()
	}
	return &Pipeline{
		extractor: extractor,
		engine:    engine,
		parser:    parse.NewParser(registry),
		registry:  registry,
	}
}

// SetLimiter throttles URL fetches; it has no effect on injected extractors
func (p *Pipeline) SetLimiter(l extract.RateLimiter) {
	if p.fetcher != nil {
		p.fetcher.SetLimiter(l)
	}
}

// SetWarnings redirects non-fatal warnings (stderr by default); nil discards them
func (p *Pipeline) SetWarnings(w io.Writer) {
	if ext, ok := p.extractor.(*extract.Extractor); ok {
		ext.SetWarnings(w)
	}
}

// Registry returns the trusted source registry in use
func (p *Pipeline) Registry() *sources.Registry {
	return p.registry
}

// Provider returns the configured provider, or nil when the engine was injected
func (p *Pipeline) Provider() llm.Provider {
	return p.provider
}

// Run verifies input and returns the verdict together with its intermediates.
// Every error is a *model.VerificationError and is returned unmodified.
func (p *Pipeline) Run(ctx context.Context, input model.ContentInput) (*Result, error) {
	content, err := p.extractor.Extract(ctx, input)
	if err != nil {
		return nil, err
	}

	req := model.VerificationRequest{
		Content:        *content,
		TrustedSources: p.registry.All(),
	}
	text := prompt.Build(req)

	raw, err := p.engine.Ask(ctx, text)
	if err != nil {
		return nil, err
	}

	verdict, err := p.parser.Parse(raw)
	if err != nil {
		return nil, err
	}

	return &Result{
		Content: content,
		Prompt:  text,
		Raw:     raw,
		Verdict: verdict,
	}, nil
}

// Verify is Run without the intermediates
func (p *Pipeline) Verify(ctx context.Context, input model.ContentInput) (*model.Verdict, error) {
	result, err := p.Run(ctx, input)
	if err != nil {
		return nil, err
	}
	return result.Verdict, nil
}
