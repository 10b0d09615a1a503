package power

import (
	"fmt"
	"math"
	"strings"
)

// ============================================================================
// TEST FAMILIES (Canonical, closed set)
// ============================================================================

// TestFamily identifies a supported hypothesis-test family.
// Every incoming test-type string normalizes to exactly one family;
// strings outside the alias vocabulary normalize to FamilyDefault.
type TestFamily string

const (
	FamilyTwoSample   TestFamily = "two_sample_t"
	FamilyPaired      TestFamily = "paired_t"
	FamilyANOVA       TestFamily = "one_way_anova"
	FamilyProportion  TestFamily = "proportion"
	FamilyCorrelation TestFamily = "correlation"

	// FamilyDefault is the documented fallback for unrecognized test
	// types. It carries two-sample t-test semantics and its own
	// (shorter) assumption list, so callers can tell a deliberate
	// two-sample request from a fallback.
	FamilyDefault TestFamily = "default_two_sample_t"
)

// familyAliases maps case-folded test-type strings onto families.
var familyAliases = map[string]TestFamily{
	"two-sample t-test":  FamilyTwoSample,
	"two sample t-test":  FamilyTwoSample,
	"independent t-test": FamilyTwoSample,
	"paired t-test":      FamilyPaired,
	"dependent t-test":   FamilyPaired,
	"one-way anova":      FamilyANOVA,
	"anova":              FamilyANOVA,
	"proportion test":    FamilyProportion,
	"proportion":         FamilyProportion,
	"chi-square test":    FamilyProportion,
	"chi-square":         FamilyProportion,
	"correlation test":   FamilyCorrelation,
	"correlation":        FamilyCorrelation,
}

// ResolveFamily normalizes a free-form test-type string to a family.
// Matching is case-insensitive; unmapped strings fall back to
// FamilyDefault rather than producing an error.
func ResolveFamily(testType string) TestFamily {
	key := strings.ToLower(strings.TrimSpace(testType))
	if family, ok := familyAliases[key]; ok {
		return family
	}
	return FamilyDefault
}

// IsPairedDesign reports whether the family is a paired/dependent
// design, in which case the total sample size is not multiplied by the
// group count.
func (f TestFamily) IsPairedDesign() bool {
	return f == FamilyPaired
}

// EffectUnit returns the effect-size unit the family interprets its
// input as (Cohen's d, Cohen's f, proportion difference, or r).
func (f TestFamily) EffectUnit() string {
	switch f {
	case FamilyANOVA:
		return "f"
	case FamilyProportion:
		return "h"
	case FamilyCorrelation:
		return "r"
	default:
		return "d"
	}
}

// ============================================================================
// PARAMETERS AND RESULTS
// ============================================================================

// DefaultGroups is used when Params.Groups is unset.
const DefaultGroups = 2

// DropoutInflation is the fixed attrition adjustment applied to the
// total sample size. It is a policy constant, not a parameter.
const DropoutInflation = 1.2

// Params is the immutable input to a sample-size calculation.
//
// EffectSize is family-specific: standardized mean difference (d) for
// the t-test families, Cohen's f for ANOVA, the difference from the
// 0.5 baseline proportion for the proportion family, and the
// correlation coefficient r for the correlation family. The engine
// performs no range validation on it; a zero effect propagates as a
// non-finite result, and r = ±1 falls through to whatever the IEEE
// arithmetic yields (the infinite Fisher z cancels, leaving the
// formula's +3 floor).
type Params struct {
	TestType   string  `json:"test_type"`
	EffectSize float64 `json:"effect_size"`
	Power      float64 `json:"power"`
	Alpha      float64 `json:"alpha"`
	Groups     int     `json:"groups,omitempty"` // 0 means DefaultGroups
}

// GroupCount returns the effective group count.
func (p Params) GroupCount() int {
	if p.Groups <= 0 {
		return DefaultGroups
	}
	return p.Groups
}

// Validate performs the boundary-side structural check callers run
// before invoking Calculate. Calculate itself never calls it: the
// engine propagates degenerate numerics instead of raising.
func (p Params) Validate() error {
	if math.IsNaN(p.EffectSize) || math.IsInf(p.EffectSize, 0) {
		return fmt.Errorf("effect size must be a finite number, got %v", p.EffectSize)
	}
	if p.EffectSize == 0 {
		return fmt.Errorf("effect size must be nonzero")
	}
	if !(p.Power > 0 && p.Power < 1) {
		return fmt.Errorf("power must be in (0,1), got %v", p.Power)
	}
	if !(p.Alpha > 0 && p.Alpha < 1) {
		return fmt.Errorf("alpha must be in (0,1), got %v", p.Alpha)
	}
	if p.Groups < 0 {
		return fmt.Errorf("groups must be >= 0, got %d", p.Groups)
	}
	return nil
}

// Result is the immutable output of a sample-size calculation.
//
// The three size fields are float64 rather than int so that degenerate
// inputs (zero effect size, out-of-range probabilities) propagate as
// ±Inf/NaN instead of crashing a conversion; finite values are always
// whole numbers after the ceiling step.
type Result struct {
	Family             TestFamily `json:"family"`
	SampleSize         float64    `json:"sample_size"`          // per group, ceiled
	TotalSampleSize    float64    `json:"total_sample_size"`    // across groups (unchanged for paired)
	AdjustedSampleSize float64    `json:"adjusted_sample_size"` // after fixed 20% dropout inflation
	Formula            string     `json:"formula"`
	Assumptions        []string   `json:"assumptions"`
	FCritical          float64    `json:"f_critical,omitempty"` // ANOVA diagnostic only, never feeds the size
	ZAlpha             float64    `json:"z_alpha"`
	ZBeta              float64    `json:"z_beta"`
}
