// Package power implements closed-form sample-size calculation for the
// five hypothesis-test families clinical study designs reach for most:
// two-sample t, paired t, one-way ANOVA, two-proportion/chi-square and
// correlation. The engine is a pure function over a parameter struct;
// it holds no state, performs no I/O and is safe to call from any
// number of goroutines.
package power

import "math"

// Calculate computes the per-group, total and dropout-adjusted sample
// sizes for the requested test family.
//
// Calculate never returns an error. Structural validation belongs to
// the caller (see Params.Validate); numerically degenerate inputs
// propagate as non-finite result fields rather than raising.
func Calculate(params Params) Result {
	family := ResolveFamily(params.TestType)
	groups := params.GroupCount()

	zAlpha := ZAlpha(params.Alpha)
	zBeta := ZBeta(params.Power)

	sampleSize := perGroupSize(family, zAlpha+zBeta, params.EffectSize, groups)

	// Adjustment stage: paired designs report the per-group figure as
	// the total; everything else multiplies by the group count. The
	// 20% attrition inflation is fixed policy.
	totalSampleSize := sampleSize
	if !family.IsPairedDesign() {
		totalSampleSize = sampleSize * float64(groups)
	}
	adjustedSampleSize := math.Ceil(totalSampleSize * DropoutInflation)

	result := Result{
		Family:             family,
		SampleSize:         sampleSize,
		TotalSampleSize:    totalSampleSize,
		AdjustedSampleSize: adjustedSampleSize,
		Formula:            family.Formula(),
		Assumptions:        family.Assumptions(),
		ZAlpha:             zAlpha,
		ZBeta:              zBeta,
	}
	if family == FamilyANOVA {
		result.FCritical = fCritical(params.Alpha)
	}
	return result
}
