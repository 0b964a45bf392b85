package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ppiankov/satya/internal/model"
	"github.com/ppiankov/satya/internal/util"
	"golang.org/x/net/html/charset"
)

// ErrTooManyRedirects is returned when a page redirects more than once
var ErrTooManyRedirects = errors.New("stopped after 1 redirect")

// ErrDisallowed is returned when robots.txt forbids fetching the page
var ErrDisallowed = errors.New("disallowed by robots.txt")

// RateLimiter throttles requests per domain
type RateLimiter interface {
	Wait(ctx context.Context, rawURL string) error
}

// Fetcher fetches article HTML
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker // nil unless robots.txt compliance is enabled
	limiter    RateLimiter         // nil unless batch/serve mode enables it
}

// FetchResult contains the fetched HTML and metadata
type FetchResult struct {
	HTML        string
	FinalURL    string
	StatusCode  int
	ContentType string
}

// NewFetcher creates a Fetcher from the HTTP config
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 2_000_000
	}

	f := &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) > 1 {
					return ErrTooManyRedirects
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  maxBytes,
	}

	if cfg.RespectRobots {
		f.robots = util.NewRobotsChecker(cfg.UserAgent, timeout)
	}

	return f
}

// SetLimiter enables per-domain rate limiting
func (f *Fetcher) SetLimiter(l RateLimiter) {
	f.limiter = l
}

// Fetch retrieves HTML content from the given URL
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	if f.robots != nil && !f.robots.IsAllowed(ctx, rawURL) {
		return nil, ErrDisallowed
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-IN,en;q=0.9,hi;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	if !isHTML(contentType) {
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}

	// Decode to UTF-8 using the declared or sniffed charset
	decoded, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	text, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}

	return &FetchResult{
		HTML:        string(text),
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
	}, nil
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// checkAddress validates that rawURL is an absolute http(s) URL
func checkAddress(rawURL string) (*url.URL, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("URL must start with http:// or https://")
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("URL has no host")
	}
	return parsed, nil
}
