package anthropometry

import (
	"fmt"
	"sort"
)

// Plausible ranges for incoming values. Anything outside is either dropped
// with a warning (body parts) or treated as a hard error (height/weight,
// which BMI and the height-dependent ratios cannot do without).
const (
	MinHeightCm      = 120.0
	MaxHeightCm      = 230.0
	MinWeightKg      = 30.0
	MaxWeightKg      = 250.0
	MinMeasurementCm = 20.0
	MaxMeasurementCm = 200.0
)

// SanitizedEntry is a MeasurementEntry after range validation and outlier
// removal, with BMI computed. Its measurement keys are always a subset of
// the input's.
type SanitizedEntry struct {
	Gender       Gender             `json:"gender"`
	Age          int                `json:"age,omitempty"`
	HeightCm     float64            `json:"heightCm"`
	WeightKg     float64            `json:"weightKg"`
	BMI          float64            `json:"bmi"`
	Measurements map[string]float64 `json:"measurements"`
}

// Sanitize range-checks a measurement entry. Body-part values outside the
// plausible range are dropped and reported as warnings. Missing or
// out-of-range height/weight, and losing every one of waist/hip/chest, are
// hard errors: the returned entry is still populated with whatever survived,
// but shape classification must not proceed.
func Sanitize(e *MeasurementEntry) (*SanitizedEntry, []string, []error) {
	var warnings []string
	var errs []error

	s := &SanitizedEntry{
		Gender:       e.Profile.Gender,
		Age:          e.Profile.Age,
		Measurements: make(map[string]float64, len(e.Measurements)),
	}
	if s.Gender == "" {
		s.Gender = GenderUnspecified
	}

	switch h := e.BodyStats.HeightCm; {
	case h <= 0:
		errs = append(errs, fmt.Errorf("height is missing"))
	case h < MinHeightCm || h > MaxHeightCm:
		errs = append(errs, fmt.Errorf("height %.1f cm outside plausible range [%.0f, %.0f]", h, MinHeightCm, MaxHeightCm))
	default:
		s.HeightCm = h
	}

	switch w := e.BodyStats.WeightKg; {
	case w <= 0:
		errs = append(errs, fmt.Errorf("weight is missing"))
	case w < MinWeightKg || w > MaxWeightKg:
		errs = append(errs, fmt.Errorf("weight %.1f kg outside plausible range [%.0f, %.0f]", w, MinWeightKg, MaxWeightKg))
	default:
		s.WeightKg = w
	}

	// Deterministic warning order regardless of map iteration.
	keys := make([]string, 0, len(e.Measurements))
	for k := range e.Measurements {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := e.Measurements[k]
		if v < MinMeasurementCm || v > MaxMeasurementCm {
			warnings = append(warnings, fmt.Sprintf("%s %.1f cm outside plausible range [%.0f, %.0f], dropped", k, v, MinMeasurementCm, MaxMeasurementCm))
			continue
		}
		s.Measurements[k] = v
	}

	if s.HeightCm > 0 && s.WeightKg > 0 {
		hm := s.HeightCm / 100
		s.BMI = s.WeightKg / (hm * hm)
	}

	if _, waist := s.Measurements[KeyWaist]; !waist {
		if _, hip := s.Measurements[KeyHip]; !hip {
			if _, chest := s.Measurements[KeyChest]; !chest {
				errs = append(errs, fmt.Errorf("none of waist, hip or chest survived validation"))
			}
		}
	}

	return s, warnings, errs
}
