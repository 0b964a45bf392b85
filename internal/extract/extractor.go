// Package extract turns raw text or an article URL into plain analyzable text.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/satya/internal/cache"
	"github.com/ppiankov/satya/internal/model"
	"github.com/ppiankov/satya/internal/sources"
)

const defaultMinChars = 20

// Extractor implements the content extraction step of verification
type Extractor struct {
	fetcher  *Fetcher
	registry *sources.Registry
	pages    *cache.Pages // optional
	warn     io.Writer
	minChars int
	maxChars int
}

// NewExtractor creates an extractor; registry is used for the outlet hint
func NewExtractor(fetcher *Fetcher, registry *sources.Registry, cfg model.HTTPConfig) *Extractor {
	minChars := cfg.MinChars
	if minChars <= 0 {
		minChars = defaultMinChars
	}
	return &Extractor{
		fetcher:  fetcher,
		registry: registry,
		warn:     io.Discard,
		minChars: minChars,
		maxChars: cfg.MaxChars,
	}
}

// SetPageCache enables caching of URL extractions
func (e *Extractor) SetPageCache(pages *cache.Pages) {
	e.pages = pages
}

// SetWarnings receives non-fatal problems such as failed cache writes
func (e *Extractor) SetWarnings(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	e.warn = w
}

// Extract produces the text to verify. Every failure is a *model.VerificationError
// of kind extraction_failed.
func (e *Extractor) Extract(ctx context.Context, input model.ContentInput) (*model.ExtractedContent, error) {
	if err := input.Validate(); err != nil {
		return nil, model.ExtractionFailed(err.Error(), nil)
	}

	switch input.Kind {
	case model.InputText:
		return e.fromText(input.Body)
	default:
		return e.fromURL(ctx, strings.TrimSpace(input.Address))
	}
}

func (e *Extractor) fromText(body string) (*model.ExtractedContent, error) {
	text := NormalizeWhitespace(body)
	if err := e.checkLength(StripMarkup(text)); err != nil {
		return nil, err
	}
	return &model.ExtractedContent{Text: text, Method: MethodText}, nil
}

func (e *Extractor) fromURL(ctx context.Context, address string) (*model.ExtractedContent, error) {
	parsed, err := checkAddress(address)
	if err != nil {
		return nil, model.ExtractionFailed(err.Error(), nil)
	}
	if isGoogleNews(parsed) {
		return nil, model.ExtractionFailed("Google News links cannot be extracted; open the article and use its own URL", nil)
	}

	if e.pages != nil {
		if cached, ok := e.pages.Get(address); ok {
			return cached, nil
		}
	}

	result, err := e.fetcher.Fetch(ctx, address)
	if err != nil {
		return nil, model.ExtractionFailed(fetchReason(err), err)
	}

	if final, err := url.Parse(result.FinalURL); err == nil && isGoogleNews(final) {
		return nil, model.ExtractionFailed("Google News redirect did not reach the original article", nil)
	}

	page, err := ParsePage(result.HTML)
	if err != nil {
		return nil, model.ExtractionFailed("parse HTML", err)
	}

	text := truncateRunes(page.Text, e.maxChars)
	if err := e.checkLength(text); err != nil {
		return nil, model.ExtractionFailed(
			"could not extract enough article text; the page may be behind a paywall, require login, or render with JavaScript", nil)
	}

	content := &model.ExtractedContent{
		Text:      text,
		SourceURL: result.FinalURL,
		Title:     page.Title,
		Method:    page.Method,
	}
	if e.registry != nil {
		if outlet, ok := e.registry.MatchURL(result.FinalURL); ok {
			content.Outlet = outlet.Name
		}
	}

	if e.pages != nil {
		if err := e.pages.Put(address, content); err != nil {
			fmt.Fprintf(e.warn, "Warning: page cache write failed: %v\n", err)
		}
	}

	return content, nil
}

func (e *Extractor) checkLength(text string) error {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return model.ExtractionFailed("content is empty", nil)
	}
	if n < e.minChars {
		return model.ExtractionFailed(fmt.Sprintf("content too short (%d characters, minimum %d)", n, e.minChars), nil)
	}
	return nil
}

func isGoogleNews(u *url.URL) bool {
	return strings.EqualFold(u.Hostname(), "news.google.com")
}

// fetchReason renders a fetch error as a short user-facing reason
func fetchReason(err error) string {
	var timeout interface{ Timeout() bool }
	switch {
	case errors.Is(err, ErrTooManyRedirects):
		return "page redirected more than once"
	case errors.Is(err, ErrDisallowed):
		return "page is disallowed by robots.txt"
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeout) && timeout.Timeout():
		return "website took too long to respond"
	default:
		return err.Error()
	}
}
