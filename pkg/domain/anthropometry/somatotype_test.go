package anthropometry

import (
	"math"
	"strings"
	"testing"
)

func fullAdvanced() *Advanced {
	return &Advanced{
		Skinfolds:      &Skinfolds{TricepsMm: 10, SubscapularMm: 12, SupraspinaleMm: 8, CalfMm: 9},
		Circumferences: &Circumferences{FlexedArmCm: 32, CalfCm: 36, ThighCm: 55},
		BoneBreadths:   &BoneBreadths{HumerusCm: 7, FemurCm: 9.5},
	}
}

func TestClassifySomatotype_HeathCarter(t *testing.T) {
	s := &SanitizedEntry{HeightCm: 178, WeightKg: 75, Measurements: map[string]float64{}}
	res := ClassifySomatotype(s, fullAdvanced(), nil, RatioSet{})

	if res.Method != MethodHeathCarter {
		t.Fatalf("method = %q, want Heath-Carter", res.Method)
	}
	if res.Triplet == nil {
		t.Fatal("exact path should expose the raw triplet")
	}

	// sumSkf = 30, correctedArm = 31, correctedCalf = 35.1, HWR ≈ 42.208
	wantEndo, wantMeso, wantEcto := 3.0606, 4.3766, 2.3166
	if math.Abs(res.Triplet.Endomorphy-wantEndo) > 0.01 {
		t.Errorf("endomorphy = %v, want ≈%v", res.Triplet.Endomorphy, wantEndo)
	}
	if math.Abs(res.Triplet.Mesomorphy-wantMeso) > 0.01 {
		t.Errorf("mesomorphy = %v, want ≈%v", res.Triplet.Mesomorphy, wantMeso)
	}
	if math.Abs(res.Triplet.Ectomorphy-wantEcto) > 0.01 {
		t.Errorf("ectomorphy = %v, want ≈%v", res.Triplet.Ectomorphy, wantEcto)
	}
}

func TestClassifySomatotype_ExactPathPrecedence(t *testing.T) {
	// Survey cues must not pull the classifier onto the simplified path
	// when the full anthropometric data is present.
	s := &SanitizedEntry{HeightCm: 178, WeightKg: 75, Measurements: map[string]float64{}}
	survey := &Survey{HardToGainWeight: true, GainFatEasily: true}

	res := ClassifySomatotype(s, fullAdvanced(), survey, RatioSet{})
	if res.Method != MethodHeathCarter {
		t.Errorf("method = %q, want Heath-Carter despite survey cues", res.Method)
	}
}

func TestClassifySomatotype_SimplifiedEctomorph(t *testing.T) {
	s := &SanitizedEntry{
		HeightCm: 180,
		WeightKg: 60,
		BMI:      60 / (1.8 * 1.8), // ≈18.5
		Measurements: map[string]float64{
			KeyWaist: 70,
			KeyHip:   90,
			KeyChest: 88,
			KeyWrist: 15,
		},
	}
	ratios := ComputeRatios(s)
	survey := &Survey{HardToGainWeight: true}

	res := ClassifySomatotype(s, nil, survey, ratios)

	if res.Method != MethodSimplified {
		t.Fatalf("method = %q, want Simplified", res.Method)
	}
	if res.Dominant != "Ectomorph dominant" {
		t.Errorf("dominant = %q, want \"Ectomorph dominant\" (breakdown %v)", res.Dominant, res.Breakdown)
	}
}

func TestClassifySomatotype_SimplifiedEndomorphMesomorphBlend(t *testing.T) {
	s := &SanitizedEntry{
		HeightCm: 170,
		WeightKg: 84,
		BMI:      84 / (1.7 * 1.7), // ≈29.1
		Measurements: map[string]float64{
			KeyWaist:    98,
			KeyHip:      102,
			KeyChest:    108,
			KeyShoulder: 112,
			KeyWrist:    19,
		},
	}
	ratios := ComputeRatios(s)
	survey := &Survey{GainMuscleEasily: true, BoneStructure: BoneBroad}

	res := ClassifySomatotype(s, nil, survey, ratios)

	// Endomorph: WHtR ≥ 0.5 (+2), WHR ≥ 0.9 (+1), BMI ≥ 28 (+1) = 4
	// Mesomorph: survey muscle (+2), broad bones (+1), wrist ≥ 18 (+1), SHR ≥ 1.05 (+1) = 5
	if !strings.Contains(res.Dominant, "blend") {
		t.Errorf("dominant = %q, want a blend (breakdown %v)", res.Dominant, res.Breakdown)
	}
	if res.Ranked[0].Label != Mesomorph || res.Ranked[1].Label != Endomorph {
		t.Errorf("ranked = %v, want Mesomorph then Endomorph", res.Ranked)
	}
}

func TestClassifySomatotype_BreakdownSumsToOne(t *testing.T) {
	cases := map[string]*SanitizedEntry{
		"no signals": {HeightCm: 170, WeightKg: 70, Measurements: map[string]float64{}},
		"mixed": {HeightCm: 170, WeightKg: 70, BMI: 24.2,
			Measurements: map[string]float64{KeyWaist: 80, KeyHip: 95, KeyWrist: 17}},
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			res := ClassifySomatotype(s, nil, nil, ComputeRatios(s))
			sum := 0.0
			for _, v := range res.Breakdown {
				sum += v
			}
			if math.Abs(sum-1) > 1e-9 {
				t.Errorf("breakdown sums to %v, want 1 (%v)", sum, res.Breakdown)
			}
		})
	}
}

func TestClassifySomatotype_NoSignalsIsBalanced(t *testing.T) {
	s := &SanitizedEntry{HeightCm: 170, WeightKg: 70, Measurements: map[string]float64{}}
	res := ClassifySomatotype(s, nil, nil, RatioSet{})

	if res.Dominant != BalancedLabel {
		t.Errorf("dominant = %q, want Balanced with no evidence", res.Dominant)
	}
}

func TestClassifySomatotype_IncompleteAdvancedFallsBack(t *testing.T) {
	adv := fullAdvanced()
	adv.BoneBreadths = nil

	s := &SanitizedEntry{HeightCm: 178, WeightKg: 75, Measurements: map[string]float64{}}
	res := ClassifySomatotype(s, adv, nil, RatioSet{})

	if res.Method != MethodSimplified {
		t.Errorf("method = %q, want Simplified without bone breadths", res.Method)
	}
	if res.Triplet != nil {
		t.Error("simplified path must not expose a triplet")
	}
}
