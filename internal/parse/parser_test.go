package parse

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/ppiankov/satya/internal/model"
	"github.com/ppiankov/satya/internal/sources"
)

func newTestParser() *Parser {
	return NewParser(sources.Default())
}

func requireMalformed(t *testing.T, raw string, err error) {
	t.Helper()
	var vErr *model.VerificationError
	if !errors.As(err, &vErr) || vErr.Kind != model.KindMalformedResponse {
		t.Fatalf("expected MalformedResponse, got %v", err)
	}
	if vErr.Raw != raw {
		t.Errorf("expected raw text to be preserved")
	}
}

func TestParse_ScenarioA_FallbackSources(t *testing.T) {
	raw := "STATUS: FALSE\nCONFIDENCE: 92\nANALYSIS: There is no government scheme offering free petrol. The claim circulated on WhatsApp."

	v, err := newTestParser().Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v.Status != model.StatusFalse {
		t.Errorf("expected FALSE, got %s", v.Status)
	}
	if v.Confidence != 92 {
		t.Errorf("expected 92, got %d", v.Confidence)
	}
	if !strings.HasPrefix(v.Analysis, "There is no government scheme") {
		t.Errorf("unexpected analysis %q", v.Analysis)
	}
	if !reflect.DeepEqual(v.RecommendedSources, sources.Default().OrderedNames()) {
		t.Errorf("expected full trusted list, got %v", v.RecommendedSources)
	}
}

func TestParse_ScenarioB_ClampsConfidence(t *testing.T) {
	v, err := newTestParser().Parse("STATUS: TRUE\nCONFIDENCE: 150\nANALYSIS: Confirmed by the ministry.")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v.Confidence != 100 {
		t.Errorf("expected 100, got %d", v.Confidence)
	}
}

func TestParse_ScenarioE_MissingAnalysis(t *testing.T) {
	raw := "STATUS: FALSE\nCONFIDENCE: 80\nRECOMMENDED_SOURCES: Alt News"
	_, err := newTestParser().Parse(raw)
	requireMalformed(t, raw, err)
	if !errors.Is(err, model.ErrMalformedResponse) {
		t.Error("expected errors.Is match on ErrMalformedResponse")
	}
}

func TestParse_EmptyResponse(t *testing.T) {
	for _, raw := range []string{"", "   \n\t "} {
		_, err := newTestParser().Parse(raw)
		requireMalformed(t, raw, err)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	tests := []struct {
		status     model.Status
		confidence int
		analysis   string
	}{
		{model.StatusTrue, 88, "The RBI did announce the repo rate change on the stated date."},
		{model.StatusFalse, 0, "The video is from 2019 and unrelated to the current event."},
		{model.StatusMisleading, 61, "The figure is accurate but omits that it applies only to Delhi.\n\nThe original notice was narrower."},
		{model.StatusUnverifiable, 35, "No credible outlet has reported this yet."},
	}

	p := newTestParser()
	for _, tt := range tests {
		raw := fmt.Sprintf("STATUS: %s\nCONFIDENCE: %d\nANALYSIS: %s\nRECOMMENDED_SOURCES: Alt News, Boom Live\nRED_FLAGS: NONE\n",
			tt.status, tt.confidence, tt.analysis)

		v, err := p.Parse(raw)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if v.Status != tt.status || v.Confidence != tt.confidence || v.Analysis != tt.analysis {
			t.Errorf("round trip mismatch: got %s/%d/%q", v.Status, v.Confidence, v.Analysis)
		}
		if !reflect.DeepEqual(v.RecommendedSources, []string{"Alt News", "Boom Live"}) {
			t.Errorf("unexpected sources %v", v.RecommendedSources)
		}
		if len(v.RedFlags) != 0 {
			t.Errorf("expected no red flags, got %v", v.RedFlags)
		}
	}
}

func TestParse_TolerantLabels(t *testing.T) {
	raw := `Sure! Here is my assessment.

**VERIFICATION_STATUS:** Fake
## Confidence Score (0-100) - 77%
- Detailed_Analysis = The image was digitally altered.
It first appeared on a parody account.

**Recommended Sources:**
1. Boom Live - https://www.boomlive.in
2. The Hindu
3. Made Up Times
4. boomlive.in

Red flags: no official source; sensational wording`

	v, err := newTestParser().Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v.Status != model.StatusFalse {
		t.Errorf("expected FALSE, got %s", v.Status)
	}
	if v.Confidence != 77 {
		t.Errorf("expected 77, got %d", v.Confidence)
	}
	if v.Analysis != "The image was digitally altered.\nIt first appeared on a parody account." {
		t.Errorf("unexpected analysis %q", v.Analysis)
	}
	if !reflect.DeepEqual(v.RecommendedSources, []string{"Boom Live", "The Hindu"}) {
		t.Errorf("unexpected sources %v", v.RecommendedSources)
	}
	if !reflect.DeepEqual(v.RedFlags, []string{"no official source", "sensational wording"}) {
		t.Errorf("unexpected red flags %v", v.RedFlags)
	}
}

func TestParse_FieldOrderIndependent(t *testing.T) {
	raw := "RECOMMENDED_SOURCES: NDTV\nANALYSIS: Reported by several outlets.\nCONFIDENCE: 70\nSTATUS: true"
	v, err := newTestParser().Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v.Status != model.StatusTrue || v.Confidence != 70 {
		t.Errorf("unexpected verdict %+v", v)
	}
	if !reflect.DeepEqual(v.RecommendedSources, []string{"NDTV"}) {
		t.Errorf("unexpected sources %v", v.RecommendedSources)
	}
}

func TestParse_ValueOnNextLine(t *testing.T) {
	raw := "STATUS:\nMISLEADING\nCONFIDENCE:\n64\nANALYSIS:\nThe quote is real but from 2014."
	v, err := newTestParser().Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v.Status != model.StatusMisleading || v.Confidence != 64 || v.Analysis != "The quote is real but from 2014." {
		t.Errorf("unexpected verdict %+v", v)
	}
}

func TestParse_PreambleIsNotAnalysis(t *testing.T) {
	raw := "Sure, here is my assessment of the claim.\n\nSTATUS: FALSE\nCONFIDENCE: 92\n"
	_, err := newTestParser().Parse(raw)
	requireMalformed(t, raw, err)
}

func TestParse_FallbackSkipsPreamble(t *testing.T) {
	raw := "Here is my assessment.\n\nSTATUS: FALSE\nCONFIDENCE: 92\n\nNo such scheme appears on the PIB website."
	v, err := newTestParser().Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v.Analysis != "No such scheme appears on the PIB website." {
		t.Errorf("expected the block after the status fields, got %q", v.Analysis)
	}
}

func TestParse_QualifiedStatusKeepsVerdict(t *testing.T) {
	raw := "STATUS: FALSE (claim not verified by PIB or any ministry)\nCONFIDENCE: 90\nANALYSIS: No notification exists."
	v, err := newTestParser().Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v.Status != model.StatusFalse || v.Confidence != 90 {
		t.Errorf("expected FALSE/90, got %s/%d", v.Status, v.Confidence)
	}
}

func TestParse_FreeTextAnalysisFallback(t *testing.T) {
	raw := "STATUS: FALSE\nCONFIDENCE: 90\n\nNo such announcement exists on the PIB website.\n\nMore commentary."
	v, err := newTestParser().Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v.Analysis != "No such announcement exists on the PIB website." {
		t.Errorf("expected first free-text block, got %q", v.Analysis)
	}
}

func TestParse_OtherSectionsEndAnalysis(t *testing.T) {
	raw := "VERIFICATION_STATUS: FALSE\nCONFIDENCE_SCORE: 85\nDETAILED_ANALYSIS: The scheme does not exist.\nINDIAN_CONTEXT: Fuel is taxed by states.\nCONCLUSION: False."
	v, err := newTestParser().Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v.Analysis != "The scheme does not exist." {
		t.Errorf("unexpected analysis %q", v.Analysis)
	}
}

func TestParse_ConfidenceDefaults(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"STATUS: FALSE\nANALYSIS: Debunked by PIB.", 50},
		{"STATUS: TRUE\nCONFIDENCE: high\nANALYSIS: Confirmed.", 50},
		{"STATUS: maybe\nANALYSIS: Unclear.", 0},
		{"ANALYSIS: No status given.", 0},
		{"STATUS: TRUE\nCONFIDENCE: 99999999999999999999\nANALYSIS: Confirmed.", 100},
		{"STATUS: TRUE\nCONFIDENCE: 0.9\nANALYSIS: Confirmed.", 0},
		{"STATUS: FALSE\nCONFIDENCE: -20\nANALYSIS: Debunked by PIB.", 0},
		{"STATUS: FALSE\nCONFIDENCE: -99999999999999999999\nANALYSIS: Debunked by PIB.", 0},
		{"## Confidence Score (0-100) - 77%\nSTATUS: TRUE\nANALYSIS: Confirmed.", 77},
	}
	for _, tt := range tests {
		v, err := newTestParser().Parse(tt.raw)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tt.raw, err)
		}
		if v.Confidence != tt.want {
			t.Errorf("Parse(%q) confidence = %d, want %d", tt.raw, v.Confidence, tt.want)
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want model.Status
	}{
		{"FALSE", model.StatusFalse},
		{"fake", model.StatusFalse},
		{"Debunked", model.StatusFalse},
		{"incorrect", model.StatusFalse},
		{"hoax", model.StatusFalse},
		{"not true", model.StatusFalse},
		{"Untrue", model.StatusFalse},
		{"TRUE", model.StatusTrue},
		{"Verified", model.StatusTrue},
		{"accurate", model.StatusTrue},
		{"**Confirmed**", model.StatusTrue},
		{"MISLEADING", model.StatusMisleading},
		{"partly true", model.StatusMisleading},
		{"PARTIALLY_TRUE", model.StatusMisleading},
		{"half-true", model.StatusMisleading},
		{"Mostly true", model.StatusMisleading},
		{"UNVERIFIABLE", model.StatusUnverifiable},
		{"unverified", model.StatusUnverifiable},
		{"[TRUE/FALSE/MISLEADING/UNVERIFIABLE]", model.StatusUnverifiable},
		{"banana", model.StatusUnverifiable},
		{"FALSE (claim not verified by PIB or any ministry)", model.StatusFalse},
		{"TRUE - not misleading", model.StatusTrue},
		{"Misleading, though partly true", model.StatusMisleading},
		{"Unverifiable. The report may be true", model.StatusUnverifiable},
		{"insufficient evidence", model.StatusUnverifiable},
		{"", model.StatusUnverifiable},
	}
	for _, tt := range tests {
		if got := normalizeStatus(tt.in); got != tt.want {
			t.Errorf("normalizeStatus(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParse_SourcesIntersection(t *testing.T) {
	raw := "STATUS: TRUE\nANALYSIS: ok.\nRECOMMENDED_SOURCES: Reuters; The Times of India; PIB Fact Check; Times of India; www.ndtv.com"
	v, err := newTestParser().Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !reflect.DeepEqual(v.RecommendedSources, []string{"Times of India", "NDTV"}) {
		t.Errorf("unexpected sources %v", v.RecommendedSources)
	}
}

func TestParse_OnlyUnknownSourcesFallsBack(t *testing.T) {
	raw := "STATUS: TRUE\nANALYSIS: ok.\nRECOMMENDED_SOURCES: Reuters, BBC"
	v, err := newTestParser().Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(v.RecommendedSources) != sources.Default().Len() {
		t.Errorf("expected fallback to full list, got %v", v.RecommendedSources)
	}
}

func TestParse_ArbitraryInputIsTotal(t *testing.T) {
	corpus := []string{
		"STATUS", ":", "::::", "STATUS:", "CONFIDENCE: -5", "ANALYSIS:", "\x00\xff", "**", "- ", "1.",
		"RECOMMENDED_SOURCES:", "Alt News", "सत्य", "\n", "\r\n", "((", "verdict = ", "%", "RED_FLAGS:",
	}
	rng := rand.New(rand.NewSource(42))
	p := newTestParser()

	for i := 0; i < 2000; i++ {
		var b strings.Builder
		for j := rng.Intn(12); j >= 0; j-- {
			b.WriteString(corpus[rng.Intn(len(corpus))])
			if rng.Intn(2) == 0 {
				b.WriteString("\n")
			}
		}
		raw := b.String()

		v, err := p.Parse(raw)
		if err != nil {
			requireMalformed(t, raw, err)
			continue
		}
		if !v.Status.Valid() {
			t.Fatalf("invalid status %q for %q", v.Status, raw)
		}
		if v.Confidence < 0 || v.Confidence > 100 {
			t.Fatalf("confidence %d out of range for %q", v.Confidence, raw)
		}
		if strings.TrimSpace(v.Analysis) == "" {
			t.Fatalf("empty analysis for %q", raw)
		}
		if len(v.RecommendedSources) == 0 {
			t.Fatalf("no sources for %q", raw)
		}
	}
}
