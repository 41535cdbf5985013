package anthropometry

import (
	"math"
	"testing"
)

func TestComputeRatios(t *testing.T) {
	s := &SanitizedEntry{
		HeightCm: 170,
		WeightKg: 70,
		Measurements: map[string]float64{
			KeyWaist:    80,
			KeyHip:      95,
			KeyChest:    92,
			KeyShoulder: 100,
		},
	}

	r := ComputeRatios(s)

	want := map[string]float64{
		RatioWHR:  0.842, // 80/95
		RatioWHtR: 0.471, // 80/170
		RatioSHR:  1.053, // 100/95
		RatioBHR:  0.968, // 92/95
		RatioSWR:  1.25,  // 100/80
	}
	for name, w := range want {
		got, ok := r[name]
		if !ok {
			t.Errorf("ratio %s missing", name)
			continue
		}
		if math.Abs(got-w) > 1e-9 {
			t.Errorf("%s = %v, want %v", name, got, w)
		}
	}
}

func TestComputeRatios_AbsencePropagates(t *testing.T) {
	s := &SanitizedEntry{
		HeightCm: 170,
		Measurements: map[string]float64{
			KeyWaist: 80,
			KeyChest: 92,
		},
	}

	r := ComputeRatios(s)

	if _, ok := r[RatioWHtR]; !ok {
		t.Error("WHtR should be computable from waist and height alone")
	}
	for _, name := range []string{RatioWHR, RatioSHR, RatioBHR, RatioSWR} {
		if v, ok := r[name]; ok {
			t.Errorf("%s should be absent without its inputs, got %v", name, v)
		}
	}
}

func TestComputeRatios_RoundTrip(t *testing.T) {
	s := &SanitizedEntry{
		HeightCm:     165.5,
		Measurements: map[string]float64{KeyWaist: 71.3, KeyHip: 98.7, KeyChest: 90.1},
	}

	r1 := ComputeRatios(s)
	r2 := ComputeRatios(s)

	if len(r1) != len(r2) {
		t.Fatalf("ratio sets differ in size: %v vs %v", r1, r2)
	}
	for name, v := range r1 {
		if r2[name] != v {
			t.Errorf("%s differs across runs: %v vs %v", name, v, r2[name])
		}
	}
}
