// Package report renders verification outcomes for people: a downloadable
// JSON document, a Markdown file and a terminal summary.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/ppiankov/satya/internal/model"
	"github.com/ppiankov/satya/internal/sources"
)

// New builds the report for one successful verification
func New(content *model.ExtractedContent, verdict *model.Verdict, registry *sources.Registry, now time.Time) *model.Report {
	r := &model.Report{
		ID:         uuid.NewString(),
		Claim:      content.Text,
		SourceURL:  content.SourceURL,
		Title:      content.Title,
		Status:     verdict.Status,
		Confidence: fmt.Sprintf("%d%%", verdict.Confidence),
		Analysis:   verdict.Analysis,
		RedFlags:   verdict.RedFlags,
		Timestamp:  now.UTC(),
		Disclaimer: model.Disclaimer,
	}

	for _, name := range verdict.RecommendedSources {
		if src, ok := registry.Lookup(name); ok {
			r.RecommendedSources = append(r.RecommendedSources, src)
			continue
		}
		r.RecommendedSources = append(r.RecommendedSources, model.TrustedSource{Name: name})
	}

	return r
}

// envelope is the top-level shape of the downloadable JSON
type envelope struct {
	Report *model.Report `json:"verification_report"`
}

// Renderer writes reports in each supported format
type Renderer struct {
	includeFooter bool
	policy        *bluemonday.Policy
}

// NewRenderer creates a renderer; the footer names the tool in Markdown output
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{
		includeFooter: includeFooter,
		policy:        bluemonday.StrictPolicy(),
	}
}

// JSON returns the indented downloadable document
func (r *Renderer) JSON(rep *model.Report) ([]byte, error) {
	data, err := json.MarshalIndent(envelope{Report: rep}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return append(data, '\n'), nil
}

// RenderJSON writes the JSON report to path
func (r *Renderer) RenderJSON(rep *model.Report, path string) error {
	data, err := r.JSON(rep)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes the Markdown report to path
func (r *Renderer) RenderMarkdown(rep *model.Report, path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown(rep)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
