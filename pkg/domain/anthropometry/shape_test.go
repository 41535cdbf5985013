package anthropometry

import (
	"math"
	"strings"
	"testing"
)

func sanitized(t *testing.T, e *MeasurementEntry) *SanitizedEntry {
	t.Helper()
	s, _, errs := Sanitize(e)
	if len(errs) != 0 {
		t.Fatalf("fixture should sanitize cleanly: %v", errs)
	}
	return s
}

func TestClassifyShape_Apple(t *testing.T) {
	s := sanitized(t, &MeasurementEntry{
		BodyStats: BodyStats{HeightCm: 170, WeightKg: 85},
		Measurements: map[string]float64{
			KeyWaist:    95,
			KeyHip:      95,
			KeyChest:    100,
			KeyShoulder: 105,
		},
	})
	r := ComputeRatios(s)

	if math.Abs(r[RatioWHtR]-0.559) > 1e-9 {
		t.Fatalf("WHtR = %v, want 0.559", r[RatioWHtR])
	}
	if r[RatioWHR] != 1.0 {
		t.Fatalf("WHR = %v, want 1.0", r[RatioWHR])
	}

	res := ClassifyShape(s, r)
	if !res.Available {
		t.Fatalf("expected available result: %s", res.Reason)
	}
	if res.Primary != string(ShapeApple) {
		t.Errorf("primary = %q, want Apple (reason %q)", res.Primary, res.Reason)
	}
}

func TestClassifyShape_Hourglass(t *testing.T) {
	s := sanitized(t, &MeasurementEntry{
		BodyStats: BodyStats{HeightCm: 165, WeightKg: 60},
		Measurements: map[string]float64{
			KeyWaist:    65,
			KeyHip:      95,
			KeyChest:    95,
			KeyShoulder: 95,
		},
	})
	r := ComputeRatios(s)

	res := ClassifyShape(s, r)
	if res.Primary != string(ShapeHourglass) {
		t.Errorf("primary = %q, want Hourglass (reason %q)", res.Primary, res.Reason)
	}
}

func TestClassifyShape_InvertedTriangle(t *testing.T) {
	s := sanitized(t, &MeasurementEntry{
		BodyStats: BodyStats{HeightCm: 185, WeightKg: 88},
		Measurements: map[string]float64{
			KeyWaist:    84,
			KeyHip:      96,
			KeyChest:    104,
			KeyShoulder: 118,
		},
	})
	res := ClassifyShape(s, ComputeRatios(s))
	if res.Primary != string(ShapeInvertedTriangle) {
		t.Errorf("primary = %q, want Inverted Triangle (reason %q)", res.Primary, res.Reason)
	}
}

func TestClassifyShape_Pear(t *testing.T) {
	s := sanitized(t, &MeasurementEntry{
		Profile:   Profile{Gender: GenderFemale},
		BodyStats: BodyStats{HeightCm: 165, WeightKg: 62},
		Measurements: map[string]float64{
			KeyWaist:    70,
			KeyHip:      104,
			KeyChest:    86,
			KeyShoulder: 92,
		},
	})
	res := ClassifyShape(s, ComputeRatios(s))
	if res.Primary != string(ShapePear) {
		t.Errorf("primary = %q, want Pear (reason %q)", res.Primary, res.Reason)
	}
}

func TestClassifyShape_ProbabilitiesSumToOne(t *testing.T) {
	s := sanitized(t, &MeasurementEntry{
		BodyStats: BodyStats{HeightCm: 170, WeightKg: 70},
		Measurements: map[string]float64{
			KeyWaist:    80,
			KeyHip:      95,
			KeyChest:    92,
			KeyShoulder: 100,
		},
	})
	res := ClassifyShape(s, ComputeRatios(s))

	if !res.Available {
		t.Fatalf("expected available result: %s", res.Reason)
	}
	sum := 0.0
	for _, p := range res.Probabilities {
		if p < 0 || p > 1 {
			t.Errorf("probability out of range: %v", p)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("probabilities sum to %v, want 1", sum)
	}
	if len(res.Ranked) != len(AllShapes) {
		t.Errorf("ranked list covers %d categories, want %d", len(res.Ranked), len(AllShapes))
	}
	for i := 1; i < len(res.Ranked); i++ {
		if res.Ranked[i].Probability > res.Ranked[i-1].Probability {
			t.Errorf("ranked list not sorted descending at %d", i)
		}
	}
}

func TestClassifyShape_TieBreakFallback(t *testing.T) {
	// No cascade rule fires for this frame: WHR 0.88 sits between the pear
	// and apple cutoffs, BHR/SHR stay inside no rule's band.
	s := sanitized(t, &MeasurementEntry{
		BodyStats: BodyStats{HeightCm: 187, WeightKg: 80},
		Measurements: map[string]float64{
			KeyWaist:    88,
			KeyHip:      100,
			KeyChest:    92,
			KeyShoulder: 97,
		},
	})
	res := ClassifyShape(s, ComputeRatios(s))

	if !res.Available {
		t.Fatalf("expected available result: %s", res.Reason)
	}
	if res.Reason != "Selected via probability tie-break." {
		t.Errorf("reason = %q, want tie-break reason", res.Reason)
	}
	if res.Primary != res.Ranked[0].Label {
		t.Errorf("tie-break primary %q should be the top-ranked label %q", res.Primary, res.Ranked[0].Label)
	}
}

func TestClassifyShape_MissingHip(t *testing.T) {
	s := sanitized(t, &MeasurementEntry{
		BodyStats: BodyStats{HeightCm: 170, WeightKg: 70},
		Measurements: map[string]float64{
			KeyWaist: 80,
			KeyChest: 92,
		},
	})
	r := ComputeRatios(s)
	res := ClassifyShape(s, r)

	if res.Available {
		t.Fatal("expected unavailable result without hip")
	}
	if !strings.Contains(res.Reason, "hip") {
		t.Errorf("reason should mention hip: %q", res.Reason)
	}
	if len(res.Probabilities) != 0 {
		t.Errorf("unavailable result must carry no probabilities, got %v", res.Probabilities)
	}
	for _, name := range []string{RatioWHR, RatioSHR, RatioBHR} {
		if _, ok := r[name]; ok {
			t.Errorf("%s requires hip and should be absent", name)
		}
	}
}

func TestClassifyShape_GenderThreshold(t *testing.T) {
	// WHR 0.88 with upper-body dominance: apple for a female profile
	// (threshold 0.85), not for an unspecified one (0.95).
	measurements := map[string]float64{
		KeyWaist:    88,
		KeyHip:      100,
		KeyChest:    100,
		KeyShoulder: 101,
	}
	female := sanitized(t, &MeasurementEntry{
		Profile:      Profile{Gender: GenderFemale},
		BodyStats:    BodyStats{HeightCm: 190, WeightKg: 80},
		Measurements: measurements,
	})
	res := ClassifyShape(female, ComputeRatios(female))
	if res.Primary != string(ShapeApple) {
		t.Errorf("female WHR 0.88 should classify Apple, got %q (reason %q)", res.Primary, res.Reason)
	}

	other := sanitized(t, &MeasurementEntry{
		BodyStats:    BodyStats{HeightCm: 190, WeightKg: 80},
		Measurements: measurements,
	})
	res = ClassifyShape(other, ComputeRatios(other))
	if strings.Contains(res.Reason, "upper-body dominance") {
		t.Errorf("unspecified gender WHR 0.88 should not hit the WHR apple rule: %q", res.Reason)
	}
}
