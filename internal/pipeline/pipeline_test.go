package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/satya/internal/extract"
	"github.com/ppiankov/satya/internal/llm"
	"github.com/ppiankov/satya/internal/model"
	"github.com/ppiankov/satya/internal/sources"
)

const sampleClaim = "PM Modi announced that petrol will now be free for all Indian citizens."

// recordingEngine returns a fixed reply and records every prompt it sees
type recordingEngine struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (e *recordingEngine) Ask(ctx context.Context, prompt string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prompts = append(e.prompts, prompt)
	return e.reply, e.err
}

// blockingProvider never answers before the context ends
type blockingProvider struct{}

func (blockingProvider) Name() string                   { return "blocking" }
func (blockingProvider) Ping(ctx context.Context) error { return nil }
func (blockingProvider) Generate(ctx context.Context, prompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func newTextPipeline(engine Engine) *Pipeline {
	cfg := model.DefaultConfig()
	registry := sources.Default()
	ext := extract.NewExtractor(extract.NewFetcher(cfg.HTTP), registry, cfg.HTTP)
	return New(ext, engine, registry)
}

func TestVerify_ScenarioA(t *testing.T) {
	engine := &recordingEngine{reply: "STATUS: FALSE\nCONFIDENCE: 92\nANALYSIS: No such scheme has been announced by the Government of India."}
	p := newTextPipeline(engine)

	v, err := p.Verify(context.Background(), model.TextInput(sampleClaim))
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if v.Status != model.StatusFalse || v.Confidence != 92 {
		t.Errorf("unexpected verdict %+v", v)
	}
	if len(v.RecommendedSources) != sources.Default().Len() {
		t.Errorf("expected full source list fallback, got %v", v.RecommendedSources)
	}
	if len(engine.prompts) != 1 || !strings.Contains(engine.prompts[0], sampleClaim) {
		t.Error("expected exactly one engine call carrying the claim")
	}
}

func TestRun_ReturnsIntermediates(t *testing.T) {
	engine := &recordingEngine{reply: "STATUS: TRUE\nCONFIDENCE: 70\nANALYSIS: Reported widely."}
	p := newTextPipeline(engine)

	result, err := p.Run(context.Background(), model.TextInput(sampleClaim))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Content.Text != sampleClaim || result.Raw != engine.reply || result.Prompt != engine.prompts[0] {
		t.Errorf("unexpected intermediates %+v", result)
	}
}

func TestVerify_IdenticalPromptsAcrossCalls(t *testing.T) {
	engine := &recordingEngine{reply: "STATUS: FALSE\nANALYSIS: Debunked."}
	p := newTextPipeline(engine)

	for i := 0; i < 3; i++ {
		if _, err := p.Verify(context.Background(), model.TextInput(sampleClaim)); err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
	}
	for i, prompt := range engine.prompts {
		if prompt != engine.prompts[0] {
			t.Errorf("prompt %d differs from the first", i)
		}
	}
}

func TestVerify_ScenarioC_404NeverCallsEngine(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	engine := &recordingEngine{reply: "STATUS: TRUE\nANALYSIS: unreachable"}
	p := newTextPipeline(engine)

	v, err := p.Verify(context.Background(), model.URLInput(server.URL+"/missing"))
	if !errors.Is(err, model.ErrExtractionFailed) {
		t.Fatalf("expected ExtractionFailed, got %v", err)
	}
	if v != nil {
		t.Error("no verdict may accompany an error")
	}
	if len(engine.prompts) != 0 {
		t.Errorf("engine must not be called, got %d calls", len(engine.prompts))
	}
}

func TestVerify_ScenarioD_Timeout(t *testing.T) {
	client := llm.NewClient(blockingProvider{}, 50*time.Millisecond, time.Millisecond)
	p := newTextPipeline(client)

	v, err := p.Verify(context.Background(), model.TextInput(sampleClaim))
	if !errors.Is(err, model.ErrEngineTimeout) {
		t.Fatalf("expected EngineTimeout, got %v", err)
	}
	if v != nil {
		t.Error("no partial verdict on timeout")
	}
}

func TestVerify_PropagatesErrorsUnmodified(t *testing.T) {
	want := model.EngineUnavailable("reasoning engine rejected the credentials", nil)
	p := newTextPipeline(&recordingEngine{err: want})

	_, err := p.Verify(context.Background(), model.TextInput(sampleClaim))
	if err != want {
		t.Errorf("expected the engine error itself, got %v", err)
	}
}

func TestVerify_MalformedReply(t *testing.T) {
	p := newTextPipeline(&recordingEngine{reply: "STATUS: FALSE\nCONFIDENCE: 80"})

	_, err := p.Verify(context.Background(), model.TextInput(sampleClaim))
	var vErr *model.VerificationError
	if !errors.As(err, &vErr) || vErr.Kind != model.KindMalformedResponse {
		t.Fatalf("expected MalformedResponse, got %v", err)
	}
	if vErr.Raw != "STATUS: FALSE\nCONFIDENCE: 80" {
		t.Errorf("expected raw reply to be kept, got %q", vErr.Raw)
	}
}

func TestVerify_ShortTextNeverCallsEngine(t *testing.T) {
	engine := &recordingEngine{}
	p := newTextPipeline(engine)

	if _, err := p.Verify(context.Background(), model.TextInput("fake news")); !errors.Is(err, model.ErrExtractionFailed) {
		t.Fatalf("expected ExtractionFailed, got %v", err)
	}
	if len(engine.prompts) != 0 {
		t.Error("engine must not be called")
	}
}

func TestNewPipeline_FailsFastWithoutKey(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.LLM.APIKey = ""

	_, err := NewPipeline(cfg)
	if !errors.Is(err, model.ErrEngineUnavailable) {
		t.Fatalf("expected EngineUnavailable, got %v", err)
	}
	if !errors.Is(err, llm.ErrMissingAPIKey) {
		t.Error("expected ErrMissingAPIKey as the cause")
	}
}

func TestNewPipeline_WithKey(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.LLM.APIKey = "test-key"
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = t.TempDir()

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	if p.Provider() == nil || p.Provider().Name() != "gemini" {
		t.Errorf("expected gemini provider, got %v", p.Provider())
	}
	if p.Registry().Len() != len(model.DefaultTrustedSources()) {
		t.Error("expected default registry")
	}
}

func TestNewPipeline_RejectsBadSources(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.LLM.APIKey = "test-key"
	cfg.TrustedSources = []model.TrustedSource{{Name: "", Homepage: "https://example.com"}}

	if _, err := NewPipeline(cfg); err == nil {
		t.Error("expected error for invalid trusted sources")
	}
}

func TestNewPipeline_OllamaNeedsNoKey(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.LLM.Provider = "ollama"
	cfg.LLM.Model = "llama3.1:8b"

	if _, err := NewPipeline(cfg); err != nil {
		t.Fatalf("expected keyless ollama pipeline, got %v", err)
	}
}
