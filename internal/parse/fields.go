package parse

import (
	"regexp"
	"strings"
)

type field int

const (
	fieldNone field = iota
	fieldStatus
	fieldConfidence
	fieldAnalysis
	fieldSources
	fieldRedFlags
	fieldOther // a heading we do not extract; its body is free text
)

// aliases maps a normalized label to its field
var aliases = map[string]field{
	"status":              fieldStatus,
	"verification status": fieldStatus,
	"verdict":             fieldStatus,
	"confidence":          fieldConfidence,
	"confidence score":    fieldConfidence,
	"confidence level":    fieldConfidence,
	"analysis":            fieldAnalysis,
	"detailed analysis":   fieldAnalysis,
	"justification":       fieldAnalysis,
	"explanation":         fieldAnalysis,
	"reasoning":           fieldAnalysis,
	"recommended sources": fieldSources,
	"sources":             fieldSources,
	"red flags":           fieldRedFlags,
	"indian context":      fieldOther,
	"evidence check":      fieldOther,
	"conclusion":          fieldOther,
}

// labelLine matches "<decoration><label><decoration><separator><value>".
// Decoration covers markdown bold/italics, headings, quotes, bullets and numbering.
var labelLine = regexp.MustCompile(`(?i)^[\s#>*_•\-]*(?:\d+[.)]\s*)?([a-z][a-z _]{2,30}?)[\s*_]*(?:\([^)]*\))?[\s*_]*(?::|=|-|–|—)[\s*_]*(.*)$`)

// matchLabel returns the field a line opens and the remainder of the line
func matchLabel(line string) (field, string, bool) {
	m := labelLine.FindStringSubmatch(line)
	if m == nil {
		return fieldNone, "", false
	}
	key := strings.Join(strings.Fields(strings.ReplaceAll(strings.ToLower(m[1]), "_", " ")), " ")
	f, ok := aliases[key]
	if !ok {
		return fieldNone, "", false
	}
	return f, strings.TrimSpace(m[2]), true
}

// textBlock is a run of text outside any extracted field
type textBlock struct {
	text string
	// afterVerdict is set once a status or confidence label preceded the block
	afterVerdict bool
}

// sections is the parsed layout of a raw response
type sections struct {
	values    map[field]string
	freeText  []textBlock
	sawLabels bool
}

// analysisFallback returns the first free-text block that follows the status
// or confidence field. Preamble ahead of those fields is never analysis.
func (s sections) analysisFallback() string {
	for _, block := range s.freeText {
		if block.afterVerdict {
			return block.text
		}
	}
	return ""
}

// split walks the response line by line. Single-line fields (status,
// confidence) take the rest of the label line, or the next non-empty line
// when that is empty. List fields end at a blank line once they have
// content. Analysis runs until the next label.
func split(raw string) sections {
	s := sections{values: make(map[field]string)}

	var (
		current      field
		buf          []string
		free         []string
		afterVerdict bool
	)

	flushFree := func() {
		if block := strings.TrimSpace(strings.Join(free, "\n")); block != "" {
			s.freeText = append(s.freeText, textBlock{text: block, afterVerdict: afterVerdict})
		}
		free = nil
	}
	flushField := func() {
		if current != fieldNone && current != fieldOther {
			if _, seen := s.values[current]; !seen {
				s.values[current] = strings.TrimSpace(strings.Join(buf, "\n"))
			}
		}
		current = fieldNone
		buf = nil
	}

	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	for _, line := range strings.Split(raw, "\n") {
		if f, rest, ok := matchLabel(line); ok {
			s.sawLabels = true
			flushField()
			flushFree()
			if singleLine(f) {
				afterVerdict = true
			}
			if f == fieldOther {
				if rest != "" {
					free = append(free, rest)
				}
				continue
			}
			current = f
			if rest != "" {
				buf = append(buf, rest)
				if singleLine(f) {
					flushField()
				}
			}
			continue
		}

		blank := strings.TrimSpace(line) == ""
		switch {
		case current == fieldNone:
			if blank {
				flushFree()
			} else {
				free = append(free, line)
			}
		case singleLine(current):
			if !blank {
				buf = append(buf, line)
				flushField()
			}
		case current == fieldSources || current == fieldRedFlags:
			if blank {
				if len(buf) > 0 {
					flushField()
				}
			} else {
				buf = append(buf, line)
			}
		default:
			buf = append(buf, line)
		}
	}
	flushField()
	flushFree()

	return s
}

func singleLine(f field) bool {
	return f == fieldStatus || f == fieldConfidence
}
