package power

import "math"

// Fixed display strings for each family's formula. These are shown
// verbatim in results and reports; they are not rendered from the
// computation.
const (
	formulaTwoSample   = "n = 2·(z_α+z_β)² / δ²"
	formulaPaired      = "n = (z_α+z_β)² / δ²"
	formulaANOVA       = "n ≈ 2·(z_α+z_β)² / (groups·f²)"
	formulaProportion  = "n = 2·p̄(1-p̄)·(z_α+z_β)² / (p₂-p₁)²"
	formulaCorrelation = "n = (z_α+z_β)² / z_r² + 3"
)

// Fixed assumption lists, in presentation order.
var familyAssumptions = map[TestFamily][]string{
	FamilyTwoSample: {
		"Normal distribution of outcomes",
		"Equal variances between groups",
		"Independent observations",
		"Continuous outcome variable",
	},
	FamilyPaired: {
		"Normal distribution of differences",
		"Paired observations",
		"Continuous outcome variable",
	},
	FamilyANOVA: {
		"Normal distribution within groups",
		"Homogeneity of variances",
		"Independent observations",
		"Continuous outcome variable",
	},
	FamilyProportion: {
		"Binary outcome variable",
		"Independent observations",
		"Expected cell counts ≥ 5",
	},
	FamilyCorrelation: {
		"Bivariate normal distribution",
		"Linear relationship",
		"Independent observations",
		"Continuous variables",
	},
	FamilyDefault: {
		"Normal distribution of outcomes",
		"Equal variances between groups",
		"Independent observations",
	},
}

// Assumptions returns the fixed assumption list for the family.
func (f TestFamily) Assumptions() []string {
	assumptions := familyAssumptions[f]
	out := make([]string, len(assumptions))
	copy(out, assumptions)
	return out
}

// Formula returns the fixed display string for the family's formula.
func (f TestFamily) Formula() string {
	switch f {
	case FamilyPaired:
		return formulaPaired
	case FamilyANOVA:
		return formulaANOVA
	case FamilyProportion:
		return formulaProportion
	case FamilyCorrelation:
		return formulaCorrelation
	default:
		return formulaTwoSample
	}
}

// proportionBaseline is the fixed first proportion for the
// proportion/chi-square family; the second proportion is the baseline
// plus the effect size.
const proportionBaseline = 0.5

// perGroupSize computes the ceiled per-group sample size for the
// family. zSum is z_alpha + z_beta. Degenerate inputs (zero effect,
// |r| = 1) deliberately propagate as non-finite values.
func perGroupSize(family TestFamily, zSum, effectSize float64, groups int) float64 {
	z2 := zSum * zSum

	switch family {
	case FamilyPaired:
		return math.Ceil(z2 / (effectSize * effectSize))

	case FamilyANOVA:
		f2 := effectSize * effectSize
		return math.Ceil(2 * z2 / (float64(groups) * f2))

	case FamilyProportion:
		p1 := proportionBaseline
		p2 := proportionBaseline + effectSize
		pBar := (p1 + p2) / 2
		diff := p2 - p1
		return math.Ceil(2 * pBar * (1 - pBar) * z2 / (diff * diff))

	case FamilyCorrelation:
		// Fisher z-transform of r. r = 0 divides by zero and the size
		// comes back +Inf; at r = ±1 the transform itself is infinite,
		// z²/z_r² collapses to zero and only the +3 floor remains.
		// Neither case is guarded.
		zr := 0.5 * math.Log((1+effectSize)/(1-effectSize))
		return math.Ceil(z2/(zr*zr) + 3)

	default:
		// Two-sample and the fallback family: the per-arm requirement
		// is ceiled first, then doubled, so arms stay balanced. For
		// the canonical d=0.5, α=0.05, power=0.80 case this yields 64.
		return 2 * math.Ceil(z2/(effectSize*effectSize))
	}
}

// F-critical lookup for the ANOVA diagnostic. Table-limited to the
// df1=1 columns that the display needs; everything else defaults to
// the α=0.05 value. The result is reported alongside the sample size
// and never feeds back into it.
func fCritical(alpha float64) float64 {
	if alpha == 0.01 {
		return 6.63
	}
	return 3.84
}
