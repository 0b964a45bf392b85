package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/satya/internal/model"
)

// StatusIcon returns the marker shown next to a status
func StatusIcon(s model.Status) string {
	switch s {
	case model.StatusTrue:
		return "✅"
	case model.StatusFalse:
		return "❌"
	case model.StatusMisleading:
		return "⚠️"
	default:
		return "❓"
	}
}

// PrintVerdict writes a human-readable summary of a successful verification
func PrintVerdict(w io.Writer, content *model.ExtractedContent, v *model.Verdict) {
	fmt.Fprintf(w, "%s %s (confidence %d%%)\n", StatusIcon(v.Status), v.Status, v.Confidence)
	if content != nil && content.SourceURL != "" {
		fmt.Fprintf(w, "Source: %s\n", content.SourceURL)
		if content.Outlet != "" {
			fmt.Fprintf(w, "Outlet: %s (trusted)\n", content.Outlet)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Analysis:")
	for _, line := range strings.Split(v.Analysis, "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}

	if len(v.RedFlags) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Red flags:")
		for _, flag := range v.RedFlags {
			fmt.Fprintf(w, "  - %s\n", flag)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Cross-check with: %s\n", strings.Join(v.RecommendedSources, ", "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, model.Disclaimer)
}

// PrintError writes a failed verification. No status or confidence is shown:
// a failed call has no verdict.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "✗ %s\n", Describe(err))
}

// Describe renders err as "kind: reason" for verification errors
func Describe(err error) string {
	var vErr *model.VerificationError
	if errors.As(err, &vErr) {
		if vErr.Reason != "" {
			return fmt.Sprintf("%s: %s", vErr.Kind, vErr.Reason)
		}
		return string(vErr.Kind)
	}
	return err.Error()
}
