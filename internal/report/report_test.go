package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/satya/internal/model"
	"github.com/ppiankov/satya/internal/sources"
)

func sampleReport(t *testing.T) *model.Report {
	t.Helper()
	content := &model.ExtractedContent{
		Text:      "PM Modi announced that petrol will now be free for all Indian citizens.",
		SourceURL: "https://www.ndtv.com/story",
		Title:     "Free petrol?",
		Outlet:    "NDTV",
		Method:    "article",
	}
	verdict := &model.Verdict{
		Status:             model.StatusFalse,
		Confidence:         92,
		Analysis:           "No such scheme exists.",
		RecommendedSources: []string{"Alt News", "Boom Live"},
		RedFlags:           []string{"sensational wording"},
	}
	return New(content, verdict, sources.Default(), time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
}

func TestNew(t *testing.T) {
	rep := sampleReport(t)

	if rep.ID == "" {
		t.Error("expected report ID")
	}
	if rep.Confidence != "92%" {
		t.Errorf("expected 92%%, got %s", rep.Confidence)
	}
	if rep.Disclaimer != model.Disclaimer {
		t.Error("expected disclaimer")
	}
	if len(rep.RecommendedSources) != 2 || rep.RecommendedSources[0].Homepage != "https://www.altnews.in" {
		t.Errorf("expected resolved sources, got %+v", rep.RecommendedSources)
	}
}

func TestNew_UniqueIDs(t *testing.T) {
	if sampleReport(t).ID == sampleReport(t).ID {
		t.Error("report IDs must differ")
	}
}

func TestRenderer_JSON(t *testing.T) {
	data, err := NewRenderer(true).JSON(sampleReport(t))
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var decoded map[string]map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	body, ok := decoded["verification_report"]
	if !ok {
		t.Fatalf("expected verification_report wrapper, got %s", data)
	}
	for _, key := range []string{"id", "news_claim", "status", "confidence", "analysis", "recommended_sources", "timestamp", "disclaimer"} {
		if _, ok := body[key]; !ok {
			t.Errorf("missing key %s", key)
		}
	}
	if body["status"] != "FALSE" || body["confidence"] != "92%" {
		t.Errorf("unexpected status/confidence: %v %v", body["status"], body["confidence"])
	}
}

func TestRenderer_Markdown(t *testing.T) {
	md := NewRenderer(true).Markdown(sampleReport(t))

	for _, want := range []string{
		"# News Verification Report",
		"**Status:** ❌ FALSE",
		"**Confidence:** 92%",
		"> PM Modi announced",
		"## Red Flags",
		"- [Alt News](https://www.altnews.in)",
		model.Disclaimer,
		"Generated by [Satya]",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRenderer_MarkdownSanitizesAnalysis(t *testing.T) {
	rep := sampleReport(t)
	rep.Analysis = `<script>alert("x")</script>The claim is <b>false</b>.<img src=x onerror=alert(1)>`

	md := NewRenderer(false).Markdown(rep)
	if strings.Contains(md, "<script") || strings.Contains(md, "<img") || strings.Contains(md, "<b>") {
		t.Errorf("markup leaked into markdown:\n%s", md)
	}
	if !strings.Contains(md, "The claim is false.") {
		t.Errorf("expected analysis text to survive sanitizing:\n%s", md)
	}
	if strings.Contains(md, "Generated by") {
		t.Error("footer should be omitted")
	}
}

func TestRenderer_MarkdownKeepsPunctuation(t *testing.T) {
	rep := sampleReport(t)
	rep.Analysis = `The PM's office & PIB said "no such scheme" exists. <i>Old</i> &lt;b&gt; text.`

	md := NewRenderer(false).Markdown(rep)
	if !strings.Contains(md, `The PM's office & PIB said "no such scheme" exists. Old`) {
		t.Errorf("expected readable prose:\n%s", md)
	}
	if strings.Contains(md, "&#39;") || strings.Contains(md, "&amp;") || strings.Contains(md, "&#34;") {
		t.Errorf("entities leaked into markdown:\n%s", md)
	}
	if strings.Contains(md, "<b>") || strings.Contains(md, "<i>") {
		t.Errorf("markup leaked into markdown:\n%s", md)
	}
}

func TestRenderer_WritesFiles(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(true)
	rep := sampleReport(t)

	jsonPath := filepath.Join(dir, "report.json")
	mdPath := filepath.Join(dir, "report.md")
	if err := r.RenderJSON(rep, jsonPath); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}
	if err := r.RenderMarkdown(rep, mdPath); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}
	for _, p := range []string{jsonPath, mdPath} {
		if info, err := os.Stat(p); err != nil || info.Size() == 0 {
			t.Errorf("expected non-empty %s", p)
		}
	}

	if err := r.RenderJSON(rep, filepath.Join(dir, "missing", "report.json")); err == nil {
		t.Error("expected write error for missing directory")
	}
}

func TestPrintVerdict(t *testing.T) {
	var buf bytes.Buffer
	content := &model.ExtractedContent{Text: "x", SourceURL: "https://www.thehindu.com/a", Outlet: "The Hindu"}
	v := &model.Verdict{Status: model.StatusMisleading, Confidence: 60, Analysis: "Partly right.\nMissing context.", RecommendedSources: []string{"The Hindu"}}

	PrintVerdict(&buf, content, v)
	out := buf.String()
	for _, want := range []string{"MISLEADING (confidence 60%)", "Outlet: The Hindu (trusted)", "  Missing context.", "Cross-check with: The Hindu"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, model.ExtractionFailed("unexpected status: 404 Not Found", nil))
	if got := buf.String(); got != "✗ extraction_failed: unexpected status: 404 Not Found\n" {
		t.Errorf("unexpected output %q", got)
	}

	buf.Reset()
	PrintError(&buf, errors.New("plain failure"))
	if !strings.Contains(buf.String(), "plain failure") {
		t.Error("expected plain error text")
	}
	if strings.Contains(buf.String(), "confidence") {
		t.Error("errors must not show a confidence")
	}
}
