// Package report renders calculation results into shareable documents:
// Markdown, HTML (rendered from the Markdown) and Excel workbooks.
// Reports are written to local files; the engine itself never touches
// the filesystem.
package report

import (
	"time"

	"gopower/domain/power"
	"gopower/internal/analysis"

	"github.com/google/uuid"
)

// Report bundles one calculation (and optionally its power curve) with
// the audit fields a shared document needs.
type Report struct {
	ID          string                 `json:"id"`
	GeneratedAt time.Time              `json:"generated_at"`
	Params      power.Params           `json:"params"`
	Result      power.Result           `json:"result"`
	Curve       []analysis.CurvePoint  `json:"curve,omitempty"`
	Summary     *analysis.CurveSummary `json:"summary,omitempty"`
}

// New builds a report for a single calculation.
func New(params power.Params, result power.Result) *Report {
	return &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Params:      params,
		Result:      result,
	}
}

// WithCurve attaches a power curve and its summary to the report.
func (r *Report) WithCurve(points []analysis.CurvePoint) *Report {
	summary := analysis.Summarize(points)
	r.Curve = points
	r.Summary = &summary
	return r
}
