// Package cache stores extracted article content for URL inputs so repeated
// batch runs do not refetch the same page. Verdicts are never cached.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/ppiankov/satya/internal/model"
)

// Cache is a byte-oriented key/value store with expiry
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// PageKey derives the cache key for an article URL
func PageKey(rawURL string) string {
	hash := sha256.Sum256([]byte(rawURL))
	return "satya:page:v1:" + hex.EncodeToString(hash[:])
}

// Pages stores ExtractedContent values on top of a Cache
type Pages struct {
	store Cache
	ttl   time.Duration
}

// NewPages wraps store; ttl <= 0 uses the store's default
func NewPages(store Cache, ttl time.Duration) *Pages {
	return &Pages{store: store, ttl: ttl}
}

// Get returns the cached extraction for rawURL
func (p *Pages) Get(rawURL string) (*model.ExtractedContent, bool) {
	data, ok := p.store.Get(PageKey(rawURL))
	if !ok {
		return nil, false
	}
	var content model.ExtractedContent
	if err := json.Unmarshal(data, &content); err != nil || content.Text == "" {
		_ = p.store.Delete(PageKey(rawURL))
		return nil, false
	}
	return &content, true
}

// Put stores an extraction for rawURL
func (p *Pages) Put(rawURL string, content *model.ExtractedContent) error {
	data, err := json.Marshal(content)
	if err != nil {
		return err
	}
	return p.store.Set(PageKey(rawURL), data, p.ttl)
}
