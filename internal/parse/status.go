package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/satya/internal/model"
)

// statusRules are checked in order; the first rule with a matching phrase wins.
// Negated and qualified forms come before the bare words they contain.
var statusRules = []struct {
	status  model.Status
	phrases []string
}{
	{model.StatusUnverifiable, []string{"unverif", "cannot be verified", "can't be verified", "could not be verified", "not verifiable", "not verified", "insufficient"}},
	{model.StatusMisleading, []string{"misleading", "partly true", "partially true", "half true", "mostly true", "partly false", "partially false", "mixed", "out of context"}},
	{model.StatusFalse, []string{"not true", "untrue", "not accurate", "inaccurate", "not correct", "incorrect", "false", "fake", "debunked", "hoax", "fabricated"}},
	{model.StatusTrue, []string{"true", "verified", "accurate", "correct", "confirmed"}},
}

// statusWords are single-word answers. An explicit leading word outranks any
// qualifier that follows it on the line.
var statusWords = map[string]model.Status{
	"false":        model.StatusFalse,
	"fake":         model.StatusFalse,
	"untrue":       model.StatusFalse,
	"incorrect":    model.StatusFalse,
	"inaccurate":   model.StatusFalse,
	"debunked":     model.StatusFalse,
	"hoax":         model.StatusFalse,
	"fabricated":   model.StatusFalse,
	"true":         model.StatusTrue,
	"verified":     model.StatusTrue,
	"accurate":     model.StatusTrue,
	"correct":      model.StatusTrue,
	"confirmed":    model.StatusTrue,
	"misleading":   model.StatusMisleading,
	"mixed":        model.StatusMisleading,
	"unverifiable": model.StatusUnverifiable,
	"unverified":   model.StatusUnverifiable,
}

var statusNoise = strings.NewReplacer("_", " ", "-", " ", "*", " ", "[", " ", "]", " ", "`", " ", "\"", " ")

// normalizeStatus maps a free-form status value onto the four statuses.
// Empty or unrecognized values are UNVERIFIABLE.
func normalizeStatus(value string) model.Status {
	value = firstLine(value)
	if value == "" {
		return model.StatusUnverifiable
	}
	value = " " + strings.Join(strings.Fields(statusNoise.Replace(strings.ToLower(value))), " ") + " "

	// An echoed template such as "TRUE/FALSE/MISLEADING/UNVERIFIABLE" is no answer
	if strings.Count(value, "/") >= 2 {
		return model.StatusUnverifiable
	}

	if status, ok := statusWords[leadingWord(value)]; ok {
		return status
	}

	for _, rule := range statusRules {
		for _, phrase := range rule.phrases {
			if strings.Contains(value, phrase) {
				return rule.status
			}
		}
	}
	return model.StatusUnverifiable
}

func leadingWord(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], ".,:;!?()'")
}

// firstInt keeps the sign so negative values clamp to 0
var firstInt = regexp.MustCompile(`-?\d+`)

// parseConfidence returns the first integer on the value's first line
func parseConfidence(value string, status model.Status) int {
	m := firstInt.FindString(firstLine(value))
	if m == "" {
		if status == model.StatusUnverifiable {
			return 0
		}
		return 50
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		// Only overflow can fail here
		if strings.HasPrefix(m, "-") {
			return 0
		}
		return 100
	}
	return model.ClampConfidence(n)
}

func firstLine(value string) string {
	for _, line := range strings.Split(value, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
