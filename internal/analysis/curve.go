// Package analysis provides the batch layer over the sample-size
// engine: effect-size sweeps, achieved-power back-calculation and
// descriptive summaries of the resulting curves. Everything here is
// sequential; each point is one independent engine call.
package analysis

import (
	"math"

	"gopower/domain/power"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// CurvePoint is one scenario on a power curve.
type CurvePoint struct {
	EffectSize         float64 `json:"effect_size"`
	SampleSize         float64 `json:"sample_size"`
	TotalSampleSize    float64 `json:"total_sample_size"`
	AdjustedSampleSize float64 `json:"adjusted_sample_size"`
	AchievedPower      float64 `json:"achieved_power"`
}

// CurveSummary is a descriptive roll-up of the adjusted sizes across a
// curve. Non-finite points (degenerate effect sizes) are excluded from
// the summary but still counted.
type CurveSummary struct {
	Points         int     `json:"points"`
	FinitePoints   int     `json:"finite_points"`
	MinAdjusted    float64 `json:"min_adjusted"`
	MaxAdjusted    float64 `json:"max_adjusted"`
	MeanAdjusted   float64 `json:"mean_adjusted"`
	MedianAdjusted float64 `json:"median_adjusted"`
}

// Sweep evaluates the engine across an effect-size grid, holding the
// remaining parameters fixed. Each point also reports the power the
// ceiled per-group size actually attains, which sits at or slightly
// above the requested target.
func Sweep(base power.Params, effectSizes []float64) []CurvePoint {
	points := make([]CurvePoint, 0, len(effectSizes))
	for _, effect := range effectSizes {
		params := base
		params.EffectSize = effect
		result := power.Calculate(params)

		points = append(points, CurvePoint{
			EffectSize:         effect,
			SampleSize:         result.SampleSize,
			TotalSampleSize:    result.TotalSampleSize,
			AdjustedSampleSize: result.AdjustedSampleSize,
			AchievedPower:      AchievedPower(result.Family, result.SampleSize, effect, params.Alpha, params.GroupCount()),
		})
	}
	return points
}

// Grid builds an inclusive effect-size grid from lo to hi with the
// given step. A non-positive step or inverted bounds yield a single
// point at lo.
func Grid(lo, hi, step float64) []float64 {
	if step <= 0 || hi < lo {
		return []float64{lo}
	}
	var grid []float64
	// Small epsilon so hi itself survives float accumulation.
	for v := lo; v <= hi+step*1e-9; v += step {
		grid = append(grid, v)
	}
	return grid
}

// AchievedPower inverts the family's closed-form formula: given a
// per-group sample size, it returns the power attained at that size.
// Non-finite or non-positive inputs return 0.
func AchievedPower(family power.TestFamily, perGroupN, effectSize, alpha float64, groups int) float64 {
	if math.IsNaN(perGroupN) || math.IsInf(perGroupN, 0) || perGroupN <= 0 {
		return 0
	}

	zAlpha := power.ZAlpha(alpha)
	effect := math.Abs(effectSize)

	var zBeta float64
	switch family {
	case power.FamilyPaired:
		zBeta = effect*math.Sqrt(perGroupN) - zAlpha
	case power.FamilyANOVA:
		zBeta = effect*math.Sqrt(perGroupN*float64(groups)/2) - zAlpha
	case power.FamilyProportion:
		p1 := 0.5
		p2 := 0.5 + effectSize
		pBar := (p1 + p2) / 2
		variance := 2 * pBar * (1 - pBar)
		if variance <= 0 {
			return 0
		}
		zBeta = math.Abs(p2-p1)*math.Sqrt(perGroupN/variance) - zAlpha
	case power.FamilyCorrelation:
		if perGroupN <= 3 {
			return 0
		}
		zr := 0.5 * math.Log((1+effectSize)/(1-effectSize))
		zBeta = math.Abs(zr)*math.Sqrt(perGroupN-3) - zAlpha
	default:
		zBeta = effect*math.Sqrt(perGroupN/2) - zAlpha
	}

	if math.IsNaN(zBeta) {
		return 0
	}
	return distuv.UnitNormal.CDF(zBeta)
}

// Summarize computes descriptive statistics over the adjusted sizes of
// a curve.
func Summarize(points []CurvePoint) CurveSummary {
	summary := CurveSummary{Points: len(points)}

	finite := make([]float64, 0, len(points))
	for _, pt := range points {
		if !math.IsNaN(pt.AdjustedSampleSize) && !math.IsInf(pt.AdjustedSampleSize, 0) {
			finite = append(finite, pt.AdjustedSampleSize)
		}
	}
	summary.FinitePoints = len(finite)
	if len(finite) == 0 {
		return summary
	}

	summary.MinAdjusted, _ = stats.Min(finite)
	summary.MaxAdjusted, _ = stats.Max(finite)
	summary.MeanAdjusted, _ = stats.Mean(finite)
	summary.MedianAdjusted, _ = stats.Median(finite)
	return summary
}
