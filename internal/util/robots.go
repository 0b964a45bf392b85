package util

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsChecker answers whether a page may be fetched, caching robots.txt per host
type RobotsChecker struct {
	mu         sync.RWMutex
	byHost     map[string]*robotstxt.RobotsData
	httpClient *http.Client
	userAgent  string
	agentToken string
}

// NewRobotsChecker creates a checker that identifies as userAgent
func NewRobotsChecker(userAgent string, timeout time.Duration) *RobotsChecker {
	return &RobotsChecker{
		byHost:     make(map[string]*robotstxt.RobotsData),
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		agentToken: ProductToken(userAgent),
	}
}

// IsAllowed reports whether rawURL may be fetched. If robots.txt cannot be
// retrieved the page is allowed.
func (r *RobotsChecker) IsAllowed(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	data, err := r.rules(ctx, parsed)
	if err != nil {
		return true
	}

	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}
	return data.TestAgent(path, r.agentToken)
}

func (r *RobotsChecker) rules(ctx context.Context, target *url.URL) (*robotstxt.RobotsData, error) {
	host := target.Host

	r.mu.RLock()
	data, ok := r.byHost[host]
	r.mu.RUnlock()
	if ok {
		return data, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", target.Scheme, host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// FromResponse treats 4xx as allow-all and 5xx as disallow-all
	data, err = robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	r.mu.Lock()
	r.byHost[host] = data
	r.mu.Unlock()

	return data, nil
}

// ProductToken returns the product name of a User-Agent ("Satya" for
// "Mozilla/5.0 (compatible; Satya/0.1)"), used for robots.txt group matching
func ProductToken(ua string) string {
	if open := strings.Index(ua, "("); open >= 0 {
		if end := strings.Index(ua[open:], ")"); end > 0 {
			for _, part := range strings.Split(ua[open+1:open+end], ";") {
				part = strings.TrimSpace(part)
				if part == "" || strings.EqualFold(part, "compatible") || strings.HasPrefix(part, "+") {
					continue
				}
				return strings.Split(part, "/")[0]
			}
		}
	}
	if fields := strings.Fields(ua); len(fields) > 0 {
		return strings.Split(fields[0], "/")[0]
	}
	return ua
}
