package power

import (
	"math"
	"testing"
)

func TestCalculate_CanonicalTwoSample(t *testing.T) {
	result := Calculate(Params{
		TestType:   "two-sample t-test",
		EffectSize: 0.5,
		Power:      0.80,
		Alpha:      0.05,
		Groups:     2,
	})

	if result.SampleSize != 64 {
		t.Errorf("SampleSize = %v, want 64", result.SampleSize)
	}
	if result.TotalSampleSize != 128 {
		t.Errorf("TotalSampleSize = %v, want 128", result.TotalSampleSize)
	}
	if result.AdjustedSampleSize != 154 {
		t.Errorf("AdjustedSampleSize = %v, want 154 (ceil of 128*1.2)", result.AdjustedSampleSize)
	}
	if result.Formula != "n = 2·(z_α+z_β)² / δ²" {
		t.Errorf("Formula = %q, want the fixed two-sample display string", result.Formula)
	}
	if result.ZAlpha != 1.96 || result.ZBeta != 0.842 {
		t.Errorf("z-scores = (%v, %v), want exact table values (1.96, 0.842)", result.ZAlpha, result.ZBeta)
	}
}

func TestCalculate_CanonicalPaired(t *testing.T) {
	result := Calculate(Params{
		TestType:   "paired t-test",
		EffectSize: 0.5,
		Power:      0.80,
		Alpha:      0.05,
		Groups:     2,
	})

	if result.SampleSize != 32 {
		t.Errorf("SampleSize = %v, want 32", result.SampleSize)
	}
	if result.TotalSampleSize != 32 {
		t.Errorf("TotalSampleSize = %v, want 32 (paired design, no group multiplier)", result.TotalSampleSize)
	}
	if result.AdjustedSampleSize != 39 {
		t.Errorf("AdjustedSampleSize = %v, want 39 (ceil of 32*1.2)", result.AdjustedSampleSize)
	}
	if result.Formula != "n = (z_α+z_β)² / δ²" {
		t.Errorf("Formula = %q, want the fixed paired display string", result.Formula)
	}
}

func TestCalculate_Families(t *testing.T) {
	tests := []struct {
		name       string
		params     Params
		wantSize   float64
		wantTotal  float64
		wantAdj    float64
		wantFamily TestFamily
	}{
		{
			name:       "anova three groups",
			params:     Params{TestType: "one-way ANOVA", EffectSize: 0.25, Power: 0.80, Alpha: 0.05, Groups: 3},
			wantSize:   84,
			wantTotal:  252,
			wantAdj:    303,
			wantFamily: FamilyANOVA,
		},
		{
			name:       "proportion",
			params:     Params{TestType: "proportion test", EffectSize: 0.2, Power: 0.80, Alpha: 0.05},
			wantSize:   95,
			wantTotal:  190,
			wantAdj:    228,
			wantFamily: FamilyProportion,
		},
		{
			name:       "correlation",
			params:     Params{TestType: "correlation test", EffectSize: 0.3, Power: 0.80, Alpha: 0.05},
			wantSize:   85,
			wantTotal:  170,
			wantAdj:    204,
			wantFamily: FamilyCorrelation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Calculate(tt.params)
			if result.Family != tt.wantFamily {
				t.Fatalf("Family = %v, want %v", result.Family, tt.wantFamily)
			}
			if result.SampleSize != tt.wantSize {
				t.Errorf("SampleSize = %v, want %v", result.SampleSize, tt.wantSize)
			}
			if result.TotalSampleSize != tt.wantTotal {
				t.Errorf("TotalSampleSize = %v, want %v", result.TotalSampleSize, tt.wantTotal)
			}
			if result.AdjustedSampleSize != tt.wantAdj {
				t.Errorf("AdjustedSampleSize = %v, want %v", result.AdjustedSampleSize, tt.wantAdj)
			}
		})
	}
}

func TestCalculate_CaseInsensitive(t *testing.T) {
	base := Params{EffectSize: 0.5, Power: 0.80, Alpha: 0.05, Groups: 2}

	lower := base
	lower.TestType = "two-sample t-test"
	mixed := base
	mixed.TestType = "Two-Sample T-Test"

	a, b := Calculate(lower), Calculate(mixed)
	if a.SampleSize != b.SampleSize || a.Formula != b.Formula || a.Family != b.Family {
		t.Errorf("case variants diverge: %+v vs %+v", a, b)
	}
}

func TestCalculate_UnrecognizedFallsBackToTwoSample(t *testing.T) {
	base := Params{EffectSize: 0.5, Power: 0.80, Alpha: 0.05, Groups: 2}

	unknown := base
	unknown.TestType = "regression"
	twoSample := base
	twoSample.TestType = "two-sample t-test"

	got, want := Calculate(unknown), Calculate(twoSample)
	if got.SampleSize != want.SampleSize || got.TotalSampleSize != want.TotalSampleSize ||
		got.AdjustedSampleSize != want.AdjustedSampleSize || got.Formula != want.Formula {
		t.Errorf("fallback numerics/formula diverge from two-sample: %+v vs %+v", got, want)
	}
	if got.Family != FamilyDefault {
		t.Errorf("Family = %v, want FamilyDefault (documented fallback variant)", got.Family)
	}
	if len(got.Assumptions) != 3 {
		t.Errorf("fallback assumptions = %v, want the shorter 3-item list", got.Assumptions)
	}
}

func TestCalculate_MonotonicInflationChain(t *testing.T) {
	// adjusted >= total >= per-group >= 1 for any sane input across
	// all families.
	families := []string{
		"two-sample t-test", "paired t-test", "one-way ANOVA",
		"proportion test", "correlation test", "something else entirely",
	}
	effects := []float64{0.1, 0.2, 0.3, 0.5, 0.8, 2.0}

	for _, testType := range families {
		for _, effect := range effects {
			if testType == "proportion test" && effect >= 0.5 {
				continue // second proportion would leave (0,1)
			}
			result := Calculate(Params{TestType: testType, EffectSize: effect, Power: 0.80, Alpha: 0.05, Groups: 2})
			if result.SampleSize < 1 {
				t.Errorf("%s effect=%v: SampleSize = %v, want >= 1", testType, effect, result.SampleSize)
			}
			if result.TotalSampleSize < result.SampleSize {
				t.Errorf("%s effect=%v: total %v < per-group %v", testType, effect, result.TotalSampleSize, result.SampleSize)
			}
			if result.AdjustedSampleSize < result.TotalSampleSize {
				t.Errorf("%s effect=%v: adjusted %v < total %v", testType, effect, result.AdjustedSampleSize, result.TotalSampleSize)
			}
		}
	}
}

func TestCalculate_GroupsDefaultToTwo(t *testing.T) {
	result := Calculate(Params{TestType: "two-sample t-test", EffectSize: 0.5, Power: 0.80, Alpha: 0.05})
	if result.TotalSampleSize != result.SampleSize*2 {
		t.Errorf("zero groups should default to 2: total %v, per-group %v", result.TotalSampleSize, result.SampleSize)
	}
}

func TestCalculate_ANOVAFCriticalDiagnostic(t *testing.T) {
	at05 := Calculate(Params{TestType: "anova", EffectSize: 0.25, Power: 0.80, Alpha: 0.05, Groups: 3})
	if at05.FCritical != 3.84 {
		t.Errorf("FCritical at alpha=0.05 = %v, want 3.84", at05.FCritical)
	}

	at01 := Calculate(Params{TestType: "anova", EffectSize: 0.25, Power: 0.80, Alpha: 0.01, Groups: 3})
	if at01.FCritical != 6.63 {
		t.Errorf("FCritical at alpha=0.01 = %v, want 6.63", at01.FCritical)
	}

	// Outside the table the diagnostic defaults rather than erroring,
	// and it never feeds the sample size.
	at10 := Calculate(Params{TestType: "anova", EffectSize: 0.25, Power: 0.80, Alpha: 0.10, Groups: 3})
	if at10.FCritical != 3.84 {
		t.Errorf("FCritical at alpha=0.10 = %v, want table default 3.84", at10.FCritical)
	}

	other := Calculate(Params{TestType: "two-sample t-test", EffectSize: 0.5, Power: 0.80, Alpha: 0.05})
	if other.FCritical != 0 {
		t.Errorf("FCritical should be zero outside the ANOVA family, got %v", other.FCritical)
	}
}

func TestCalculate_DegenerateInputsPropagateNonFinite(t *testing.T) {
	// Zero correlation: Fisher z is 0, division by zero, +Inf result.
	zeroR := Calculate(Params{TestType: "correlation test", EffectSize: 0, Power: 0.80, Alpha: 0.05})
	if !math.IsInf(zeroR.SampleSize, 1) {
		t.Errorf("correlation r=0: SampleSize = %v, want +Inf (must not throw)", zeroR.SampleSize)
	}
	if !math.IsInf(zeroR.AdjustedSampleSize, 1) {
		t.Errorf("correlation r=0: AdjustedSampleSize = %v, want +Inf propagated", zeroR.AdjustedSampleSize)
	}

	// Perfect correlation: the Fisher transform is infinite, z²/z_r²
	// collapses to zero and only the +3 floor survives. The engine
	// lets the IEEE arithmetic stand rather than guarding |r| >= 1.
	for _, r := range []float64{1, -1} {
		perfectR := Calculate(Params{TestType: "correlation test", EffectSize: r, Power: 0.80, Alpha: 0.05})
		if perfectR.SampleSize != 3 {
			t.Errorf("correlation r=%v: SampleSize = %v, want 3 (infinite Fisher z leaves the +3 floor)", r, perfectR.SampleSize)
		}
		if perfectR.AdjustedSampleSize != 8 {
			t.Errorf("correlation r=%v: AdjustedSampleSize = %v, want 8 (ceil of 3*2*1.2)", r, perfectR.AdjustedSampleSize)
		}
	}

	// Zero effect on the t-test path.
	zeroD := Calculate(Params{TestType: "two-sample t-test", EffectSize: 0, Power: 0.80, Alpha: 0.05})
	if !math.IsInf(zeroD.SampleSize, 1) {
		t.Errorf("d=0: SampleSize = %v, want +Inf", zeroD.SampleSize)
	}

	// Zero proportion difference.
	zeroP := Calculate(Params{TestType: "proportion test", EffectSize: 0, Power: 0.80, Alpha: 0.05})
	if !math.IsInf(zeroP.SampleSize, 1) {
		t.Errorf("proportion effect=0: SampleSize = %v, want +Inf", zeroP.SampleSize)
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"valid", Params{TestType: "paired t-test", EffectSize: 0.5, Power: 0.8, Alpha: 0.05}, false},
		{"zero effect", Params{EffectSize: 0, Power: 0.8, Alpha: 0.05}, true},
		{"NaN effect", Params{EffectSize: math.NaN(), Power: 0.8, Alpha: 0.05}, true},
		{"power at 1", Params{EffectSize: 0.5, Power: 1, Alpha: 0.05}, true},
		{"power at 0", Params{EffectSize: 0.5, Power: 0, Alpha: 0.05}, true},
		{"alpha at 0", Params{EffectSize: 0.5, Power: 0.8, Alpha: 0}, true},
		{"alpha above 1", Params{EffectSize: 0.5, Power: 0.8, Alpha: 1.2}, true},
		{"negative groups", Params{EffectSize: 0.5, Power: 0.8, Alpha: 0.05, Groups: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
