package anthropometry

import "math"

// Ratio names. These are the keys of a RatioSet.
const (
	RatioWHR  = "WHR"  // waist / hip
	RatioWHtR = "WHtR" // waist / height
	RatioSHR  = "SHR"  // shoulder / hip
	RatioBHR  = "BHR"  // chest (bust) / hip
	RatioSWR  = "SWR"  // shoulder / waist
)

// RatioSet maps ratio name to a value rounded to 3 decimals. A ratio is
// present only when both of its inputs exist and the denominator is
// non-zero; a missing ratio means "insufficient evidence", never zero.
type RatioSet map[string]float64

// ComputeRatios derives the proportion ratios from a sanitized entry.
// Only exact key matches are used: shoulder never falls back to chest here,
// BHR is the chest-based path instead.
func ComputeRatios(s *SanitizedEntry) RatioSet {
	ratios := make(RatioSet, 5)

	waist, hasWaist := s.Measurements[KeyWaist]
	hip, hasHip := s.Measurements[KeyHip]
	chest, hasChest := s.Measurements[KeyChest]
	shoulder, hasShoulder := s.Measurements[KeyShoulder]

	put := func(name string, num, den float64) {
		if den == 0 {
			return
		}
		ratios[name] = math.Round(num/den*1000) / 1000
	}

	if hasWaist && hasHip {
		put(RatioWHR, waist, hip)
	}
	if hasWaist && s.HeightCm > 0 {
		put(RatioWHtR, waist, s.HeightCm)
	}
	if hasShoulder && hasHip {
		put(RatioSHR, shoulder, hip)
	}
	if hasChest && hasHip {
		put(RatioBHR, chest, hip)
	}
	if hasShoulder && hasWaist {
		put(RatioSWR, shoulder, waist)
	}

	return ratios
}
