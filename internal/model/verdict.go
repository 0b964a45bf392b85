package model

// Status is the verdict classification. Only these four values ever appear in a Verdict.
type Status string

const (
	StatusTrue         Status = "TRUE"
	StatusFalse        Status = "FALSE"
	StatusMisleading   Status = "MISLEADING"
	StatusUnverifiable Status = "UNVERIFIABLE"
)

// Valid reports whether s is one of the four verdict statuses
func (s Status) Valid() bool {
	switch s {
	case StatusTrue, StatusFalse, StatusMisleading, StatusUnverifiable:
		return true
	}
	return false
}

// Verdict is the structured result of one verification call.
// Confidence is always within [0,100] and Analysis is never empty.
type Verdict struct {
	Status             Status   `json:"status"`
	Confidence         int      `json:"confidence"`
	Analysis           string   `json:"analysis"`
	RecommendedSources []string `json:"recommended_sources"`
	RedFlags           []string `json:"red_flags,omitempty"`
}

// ClampConfidence bounds a confidence value to [0,100]
func ClampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
