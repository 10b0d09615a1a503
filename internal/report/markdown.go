package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Markdown renders the report as a Markdown document.
func (r *Report) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Sample Size Calculation\n\n")
	fmt.Fprintf(&b, "Report `%s`, generated %s\n\n", r.ID, r.GeneratedAt.Format("2006-01-02 15:04 UTC"))

	fmt.Fprintf(&b, "## Parameters\n\n")
	fmt.Fprintf(&b, "| Parameter | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Test | %s |\n", r.Params.TestType)
	fmt.Fprintf(&b, "| Effect size (%s) | %v |\n", r.Result.Family.EffectUnit(), r.Params.EffectSize)
	fmt.Fprintf(&b, "| Power | %v |\n", r.Params.Power)
	fmt.Fprintf(&b, "| Alpha | %v |\n", r.Params.Alpha)
	fmt.Fprintf(&b, "| Groups | %d |\n\n", r.Params.GroupCount())

	fmt.Fprintf(&b, "## Result\n\n")
	fmt.Fprintf(&b, "Formula: `%s`\n\n", r.Result.Formula)
	fmt.Fprintf(&b, "| Figure | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Per-group sample size | %s |\n", formatSize(r.Result.SampleSize))
	fmt.Fprintf(&b, "| Total sample size | %s |\n", formatSize(r.Result.TotalSampleSize))
	fmt.Fprintf(&b, "| Adjusted for 20%% dropout | %s |\n", formatSize(r.Result.AdjustedSampleSize))
	if r.Result.FCritical != 0 {
		fmt.Fprintf(&b, "| F-critical (diagnostic) | %.2f |\n", r.Result.FCritical)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Assumptions\n\n")
	for i, assumption := range r.Result.Assumptions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, assumption)
	}
	b.WriteString("\n")

	if len(r.Curve) > 0 {
		fmt.Fprintf(&b, "## Power Curve\n\n")
		fmt.Fprintf(&b, "| Effect size | Per group | Total | Adjusted | Achieved power |\n|---|---|---|---|---|\n")
		for _, pt := range r.Curve {
			fmt.Fprintf(&b, "| %v | %s | %s | %s | %.3f |\n",
				pt.EffectSize, formatSize(pt.SampleSize), formatSize(pt.TotalSampleSize),
				formatSize(pt.AdjustedSampleSize), pt.AchievedPower)
		}
		b.WriteString("\n")
		if r.Summary != nil && r.Summary.FinitePoints > 0 {
			fmt.Fprintf(&b, "Adjusted sizes across %d scenarios: min %s, median %s, mean %.1f, max %s\n",
				r.Summary.FinitePoints, formatSize(r.Summary.MinAdjusted), formatSize(r.Summary.MedianAdjusted),
				r.Summary.MeanAdjusted, formatSize(r.Summary.MaxAdjusted))
		}
	}

	return b.String()
}

// HTML renders the Markdown report to a standalone HTML fragment.
func (r *Report) HTML() []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(r.Markdown()), p, renderer)
}

// formatSize renders a size field, keeping degenerate values legible.
func formatSize(v float64) string {
	if math.IsNaN(v) {
		return "undefined"
	}
	if math.IsInf(v, 0) {
		return "unbounded"
	}
	return fmt.Sprintf("%.0f", v)
}
