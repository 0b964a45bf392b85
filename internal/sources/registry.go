// Package sources holds the trusted outlet registry used for recommendations
// and cross-reference hints. A Registry is immutable after construction.
package sources

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/ppiankov/satya/internal/model"
)

var (
	parenthetical = regexp.MustCompile(`\([^)]*\)`)
	nonAlnum      = regexp.MustCompile(`[^a-z0-9]+`)
)

// Registry is an ordered, read-only list of trusted sources
type Registry struct {
	sources []model.TrustedSource
	byKey   map[string]int // normalized name/host -> index
	hosts   []hostEntry
}

type hostEntry struct {
	host  string
	index int
}

// NewRegistry builds a registry from the given list, preserving order.
// Entries without a name or with an unparseable homepage are rejected.
func NewRegistry(list []model.TrustedSource) (*Registry, error) {
	r := &Registry{
		sources: make([]model.TrustedSource, 0, len(list)),
		byKey:   make(map[string]int),
	}

	for _, src := range list {
		name := strings.TrimSpace(src.Name)
		if name == "" {
			return nil, fmt.Errorf("trusted source with empty name")
		}
		host, err := homepageHost(src.Homepage)
		if err != nil {
			return nil, fmt.Errorf("trusted source %q: %w", name, err)
		}
		if _, dup := r.byKey[normalize(name)]; dup {
			return nil, fmt.Errorf("duplicate trusted source: %s", name)
		}

		idx := len(r.sources)
		src.Name = name
		r.sources = append(r.sources, src)
		r.hosts = append(r.hosts, hostEntry{host: host, index: idx})

		r.addKey(normalize(name), idx)
		r.addKey(normalize(strings.TrimPrefix(strings.ToLower(name), "the ")), idx)
		r.addKey(normalize(host), idx)
		r.addKey(normalize(strings.Split(host, ".")[0]), idx)
	}

	return r, nil
}

// Default returns the built-in registry
func Default() *Registry {
	r, err := NewRegistry(model.DefaultTrustedSources())
	if err != nil {
		panic(err)
	}
	return r
}

// addKey registers a lookup key; the first source to claim a key keeps it
func (r *Registry) addKey(key string, idx int) {
	if key == "" {
		return
	}
	if _, exists := r.byKey[key]; !exists {
		r.byKey[key] = idx
	}
}

// All returns a copy of the sources in configured order
func (r *Registry) All() []model.TrustedSource {
	out := make([]model.TrustedSource, len(r.sources))
	copy(out, r.sources)
	return out
}

// Names returns the set of source names
func (r *Registry) Names() map[string]struct{} {
	names := make(map[string]struct{}, len(r.sources))
	for _, s := range r.sources {
		names[s.Name] = struct{}{}
	}
	return names
}

// OrderedNames returns source names in configured order
func (r *Registry) OrderedNames() []string {
	names := make([]string, len(r.sources))
	for i, s := range r.sources {
		names[i] = s.Name
	}
	return names
}

// Len returns the number of sources
func (r *Registry) Len() int {
	return len(r.sources)
}

// Lookup resolves a free-form mention ("The Hindu", "thehindu.com",
// "Alt News (Fact-checker) - https://www.altnews.in") to a registered source
func (r *Registry) Lookup(mention string) (model.TrustedSource, bool) {
	mention = strings.TrimSpace(mention)
	if mention == "" {
		return model.TrustedSource{}, false
	}

	candidates := []string{mention}
	for _, sep := range []string{" - ", " – ", " — ", ": "} {
		if strings.Contains(mention, sep) {
			candidates = append(candidates, strings.Split(mention, sep)...)
		}
	}

	for _, c := range candidates {
		c = strings.TrimSpace(parenthetical.ReplaceAllString(c, ""))
		if c == "" {
			continue
		}
		if strings.Contains(c, "://") || strings.HasPrefix(strings.ToLower(c), "www.") {
			if src, ok := r.MatchURL(c); ok {
				return src, true
			}
			continue
		}
		lower := strings.ToLower(c)
		for _, key := range []string{normalize(lower), normalize(strings.TrimPrefix(lower, "the "))} {
			if idx, ok := r.byKey[key]; ok {
				return r.sources[idx], true
			}
		}
	}

	return model.TrustedSource{}, false
}

// MatchURL reports which trusted source, if any, serves the given URL.
// Subdomains of a registered host match (e.g. m.thehindu.com).
func (r *Registry) MatchURL(rawURL string) (model.TrustedSource, bool) {
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	host, err := homepageHost(rawURL)
	if err != nil {
		return model.TrustedSource{}, false
	}

	for _, h := range r.hosts {
		if host == h.host || strings.HasSuffix(host, "."+h.host) {
			return r.sources[h.index], true
		}
	}
	return model.TrustedSource{}, false
}

// homepageHost returns the lower-cased host without port or leading www.
func homepageHost(rawURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parse homepage: %w", err)
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return "", fmt.Errorf("homepage %q has no host", rawURL)
	}
	return strings.TrimPrefix(host, "www."), nil
}

func normalize(s string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(s), "")
}
