package model

import (
	"fmt"
	"strings"
)

// InputKind distinguishes pasted text from a URL to fetch
type InputKind string

const (
	InputText InputKind = "text"
	InputURL  InputKind = "url"
)

// SampleClaim is a well-known claim used for connectivity checks
const SampleClaim = "PM Modi is the current Prime Minister of India"

// ContentInput is the raw material handed to the verifier: either text or a URL
type ContentInput struct {
	Kind    InputKind `json:"kind"`
	Body    string    `json:"body,omitempty"`    // Set when Kind == InputText
	Address string    `json:"address,omitempty"` // Set when Kind == InputURL
}

// TextInput wraps pasted news text
func TextInput(body string) ContentInput {
	return ContentInput{Kind: InputText, Body: body}
}

// URLInput wraps a news article address
func URLInput(address string) ContentInput {
	return ContentInput{Kind: InputURL, Address: address}
}

// Validate checks that the field selected by Kind is non-empty after trimming
func (c ContentInput) Validate() error {
	switch c.Kind {
	case InputText:
		if strings.TrimSpace(c.Body) == "" {
			return fmt.Errorf("text input is empty")
		}
	case InputURL:
		if strings.TrimSpace(c.Address) == "" {
			return fmt.Errorf("url input is empty")
		}
	default:
		return fmt.Errorf("unknown input kind: %q", c.Kind)
	}
	return nil
}

// Value returns the body or address depending on Kind
func (c ContentInput) Value() string {
	if c.Kind == InputURL {
		return c.Address
	}
	return c.Body
}

// ExtractedContent is the plain text actually sent for reasoning
type ExtractedContent struct {
	Text      string `json:"text"`
	SourceURL string `json:"source_url,omitempty"` // Final URL after redirect, URL inputs only
	Title     string `json:"title,omitempty"`      // Page <title>, URL inputs only
	Outlet    string `json:"outlet,omitempty"`     // Trusted source that published the page, if any
	Method    string `json:"method"`               // Extraction heuristic that produced Text
}

// VerificationRequest is built fresh for every verify call
type VerificationRequest struct {
	Content        ExtractedContent
	TrustedSources []TrustedSource
}
