package report

import (
	"fmt"
	"strings"

	"github.com/ppiankov/satya/internal/model"
)

// Markdown renders rep. Every engine-written or user-supplied string passes
// through the strict sanitizer first, so no markup reaches the document.
func (r *Renderer) Markdown(rep *model.Report) string {
	var b strings.Builder

	b.WriteString("# News Verification Report\n\n")
	fmt.Fprintf(&b, "**Status:** %s %s  \n", StatusIcon(rep.Status), rep.Status)
	fmt.Fprintf(&b, "**Confidence:** %s  \n", rep.Confidence)
	fmt.Fprintf(&b, "**Generated:** %s  \n", rep.Timestamp.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "**Report ID:** `%s`\n\n", rep.ID)

	b.WriteString("## Claim\n\n")
	if rep.Title != "" {
		fmt.Fprintf(&b, "**%s**\n\n", r.clean(rep.Title))
	}
	if rep.SourceURL != "" {
		fmt.Fprintf(&b, "Source: <%s>\n\n", r.clean(rep.SourceURL))
	}
	for _, line := range strings.Split(r.clean(rep.Claim), "\n") {
		fmt.Fprintf(&b, "> %s\n", line)
	}
	b.WriteString("\n")

	b.WriteString("## Analysis\n\n")
	b.WriteString(r.clean(rep.Analysis))
	b.WriteString("\n\n")

	if len(rep.RedFlags) > 0 {
		b.WriteString("## Red Flags\n\n")
		for _, flag := range rep.RedFlags {
			fmt.Fprintf(&b, "- %s\n", r.clean(flag))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Recommended Sources\n\n")
	for _, src := range rep.RecommendedSources {
		if src.Homepage != "" {
			fmt.Fprintf(&b, "- [%s](%s)\n", src.Name, src.Homepage)
		} else {
			fmt.Fprintf(&b, "- %s\n", r.clean(src.Name))
		}
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "_%s_\n", rep.Disclaimer)
	if r.includeFooter {
		b.WriteString("\n---\n\nGenerated by [Satya](https://github.com/ppiankov/satya)\n")
	}

	return b.String()
}

// proseEntities undoes the escaping the sanitizer applies to plain text.
// &lt; and &gt; stay escaped so stripped markup cannot reappear.
var proseEntities = strings.NewReplacer("&#39;", "'", "&#34;", `"`, "&quot;", `"`, "&amp;", "&")

func (r *Renderer) clean(s string) string {
	return strings.TrimSpace(proseEntities.Replace(r.policy.Sanitize(s)))
}
