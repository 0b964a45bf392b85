package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/ppiankov/satya/internal/model"
	"github.com/sashabaranov/go-openai"
)

const (
	// DefaultTimeout bounds one Ask call including its retry
	DefaultTimeout = 30 * time.Second

	// DefaultRetryBackoff is the pause before the single retry
	DefaultRetryBackoff = 2 * time.Second

	maxAttempts = 2
)

// Client applies the timeout and retry policy on top of a Provider
// and maps every failure onto the verification error taxonomy.
type Client struct {
	provider Provider
	timeout  time.Duration
	backoff  time.Duration

	// sleep is swapped in tests
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient wraps provider; zero durations select the defaults
func NewClient(provider Provider, timeout, backoff time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if backoff <= 0 {
		backoff = DefaultRetryBackoff
	}
	return &Client{
		provider: provider,
		timeout:  timeout,
		backoff:  backoff,
		sleep:    sleepContext,
	}
}

// Provider returns the wrapped provider
func (c *Client) Provider() Provider {
	return c.provider
}

// Ask sends prompt and returns the raw completion text. Transient failures
// are retried once; errors are always *model.VerificationError.
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	if c.provider == nil {
		return "", model.EngineUnavailable("no reasoning engine configured", nil)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(callCtx, c.backoff); err != nil {
				return "", classify(ctx, callCtx, err)
			}
		}

		out, err := c.provider.Generate(callCtx, prompt)
		if err == nil {
			if strings.TrimSpace(out) == "" {
				return "", model.MalformedResponse(out, "reasoning engine returned an empty completion")
			}
			return out, nil
		}

		lastErr = err
		if callCtx.Err() != nil || !Retryable(err) {
			break
		}
	}

	return "", classify(ctx, callCtx, lastErr)
}

// Retryable reports whether err is a transient engine failure:
// a network error, HTTP 429 or a 5xx.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrMissingAPIKey) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if code, ok := StatusCode(err); ok {
		return code == 429 || code >= 500
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)
}

// StatusCode extracts the HTTP status of a provider error, if it carries one
func StatusCode(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	var oaErr *openai.APIError
	if errors.As(err, &oaErr) && oaErr.HTTPStatusCode != 0 {
		return oaErr.HTTPStatusCode, true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return reqErr.HTTPStatusCode, true
	}
	return 0, false
}

func classify(parent, call context.Context, err error) error {
	if errors.Is(parent.Err(), context.Canceled) {
		return model.EngineUnavailable("request cancelled", err)
	}
	if call.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
		return model.EngineTimeout(err)
	}
	if errors.Is(err, ErrMissingAPIKey) {
		return model.EngineUnavailable("API key not configured", err)
	}

	if code, ok := StatusCode(err); ok {
		switch {
		case code == 401 || code == 403:
			return model.EngineUnavailable("reasoning engine rejected the credentials", err)
		case code == 429:
			return model.EngineUnavailable("reasoning engine rate limit exceeded", err)
		case code >= 500:
			return model.EngineUnavailable(fmt.Sprintf("reasoning engine error (HTTP %d)", code), err)
		default:
			return model.EngineUnavailable(fmt.Sprintf("reasoning engine rejected the request (HTTP %d)", code), err)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return model.EngineTimeout(err)
		}
		return model.EngineUnavailable("reasoning engine unreachable", err)
	}
	return model.EngineUnavailable("reasoning engine call failed", err)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
