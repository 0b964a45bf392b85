// Package parse turns free-text reasoning engine output into a Verdict.
//
// The parser is total: for any input it returns either a Verdict whose status
// is one of the four values and whose confidence lies in [0,100], or a
// MalformedResponse error carrying the raw text.
package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/satya/internal/model"
	"github.com/ppiankov/satya/internal/sources"
)

// Parser resolves recommended sources against a registry
type Parser struct {
	registry *sources.Registry
}

// NewParser creates a parser bound to registry
func NewParser(registry *sources.Registry) *Parser {
	return &Parser{registry: registry}
}

// Parse extracts a Verdict from raw. It never panics.
func (p *Parser) Parse(raw string) (verdict *model.Verdict, err error) {
	defer func() {
		if r := recover(); r != nil {
			verdict = nil
			err = model.MalformedResponse(raw, fmt.Sprintf("parser failure: %v", r))
		}
	}()

	if strings.TrimSpace(raw) == "" {
		return nil, model.MalformedResponse(raw, "empty response")
	}

	s := split(raw)

	analysis := cleanAnalysis(s.values[fieldAnalysis])
	if analysis == "" {
		analysis = cleanAnalysis(s.analysisFallback())
	}
	if analysis == "" {
		return nil, model.MalformedResponse(raw, "response has no analysis")
	}

	status := normalizeStatus(s.values[fieldStatus])

	return &model.Verdict{
		Status:             status,
		Confidence:         parseConfidence(s.values[fieldConfidence], status),
		Analysis:           analysis,
		RecommendedSources: p.resolveSources(s.values[fieldSources]),
		RedFlags:           parseRedFlags(s.values[fieldRedFlags]),
	}, nil
}

var (
	listSplit  = regexp.MustCompile(`[\n,;|]+`)
	flagSplit  = regexp.MustCompile(`[\n;]+`)
	listMarker = regexp.MustCompile(`^(?:[-*•+]+|\d+[.)])\s*`)
)

// resolveSources keeps the registry names the engine mentioned, in order of
// first mention. With none left, the full registry list is recommended.
func (p *Parser) resolveSources(value string) []string {
	var names []string
	seen := make(map[string]bool)

	for _, item := range listSplit.Split(value, -1) {
		item = cleanItem(item)
		if item == "" {
			continue
		}
		src, ok := p.registry.Lookup(item)
		if !ok || seen[src.Name] {
			continue
		}
		seen[src.Name] = true
		names = append(names, src.Name)
	}

	if len(names) == 0 {
		return p.registry.OrderedNames()
	}
	return names
}

func parseRedFlags(value string) []string {
	var flags []string
	for _, item := range flagSplit.Split(value, -1) {
		item = cleanItem(item)
		switch strings.ToLower(strings.TrimRight(item, ".")) {
		case "", "none", "n/a", "na", "no red flags", "none identified", "none found":
			continue
		}
		flags = append(flags, item)
	}
	return flags
}

func cleanItem(item string) string {
	item = strings.TrimSpace(item)
	item = listMarker.ReplaceAllString(item, "")
	item = strings.Trim(item, " *_`\"'[]")
	return strings.TrimSpace(item)
}

func cleanAnalysis(text string) string {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, "*_")
	return strings.TrimSpace(text)
}
