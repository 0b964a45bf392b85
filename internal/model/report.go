package model

import "time"

// Disclaimer is attached to every rendered report
const Disclaimer = "This is an AI-assisted analysis. Always verify with multiple sources."

// Report is the downloadable rendering of one verification.
// It is built by display surfaces; the pipeline never persists it.
type Report struct {
	ID                 string          `json:"id"`
	Claim              string          `json:"news_claim"`
	SourceURL          string          `json:"source_url,omitempty"`
	Title              string          `json:"title,omitempty"`
	Status             Status          `json:"status"`
	Confidence         string          `json:"confidence"` // "92%"
	Analysis           string          `json:"analysis"`
	RedFlags           []string        `json:"red_flags,omitempty"`
	RecommendedSources []TrustedSource `json:"recommended_sources"`
	Timestamp          time.Time       `json:"timestamp"`
	Disclaimer         string          `json:"disclaimer"`
}
