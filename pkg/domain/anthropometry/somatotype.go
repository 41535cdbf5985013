package anthropometry

import (
	"fmt"
	"math"
)

// Somatotype component labels.
const (
	Endomorph = "Endomorph"
	Mesomorph = "Mesomorph"
	Ectomorph = "Ectomorph"
)

// BalancedLabel is the dominance label when no component stands out, and
// the tip-table key for the generic tip set.
const BalancedLabel = "Balanced"

// Somatotype estimation methods.
const (
	MethodHeathCarter = "Heath-Carter"
	MethodSimplified  = "Simplified"
)

// Dominance labelling cutoffs: the top component must hold at least 60% of
// the total for a "dominant" label, and the runner-up at least 40% for a
// "blend".
const (
	dominantShare = 0.6
	blendShare    = 0.4
)

// HeathCarterTriplet is the raw endo/meso/ecto triplet from the exact
// formula, before normalisation to percentages.
type HeathCarterTriplet struct {
	Endomorphy float64 `json:"endomorphy"`
	Mesomorphy float64 `json:"mesomorphy"`
	Ectomorphy float64 `json:"ectomorphy"`
}

// SomatotypeResult is a build classification: a dominance label, the
// percentage breakdown over the three components, and the method used.
// Triplet is set only on the Heath-Carter path.
type SomatotypeResult struct {
	Method    string              `json:"method"`
	Dominant  string              `json:"dominant"`
	Breakdown map[string]float64  `json:"breakdown"`
	Ranked    []RankedLabel       `json:"ranked"`
	Triplet   *HeathCarterTriplet `json:"triplet,omitempty"`
	Reason    string              `json:"reason"`
}

// hasExactInputs reports whether the entry carries everything the exact
// Heath-Carter formula needs.
func hasExactInputs(s *SanitizedEntry, adv *Advanced) bool {
	if s.HeightCm <= 0 || s.WeightKg <= 0 || adv == nil {
		return false
	}
	sk, c, b := adv.Skinfolds, adv.Circumferences, adv.BoneBreadths
	if sk == nil || c == nil || b == nil {
		return false
	}
	return sk.TricepsMm > 0 && sk.SubscapularMm > 0 && sk.SupraspinaleMm > 0 && sk.CalfMm > 0 &&
		c.FlexedArmCm > 0 && c.CalfCm > 0 && c.ThighCm > 0 &&
		b.HumerusCm > 0 && b.FemurCm > 0
}

// heathCarter computes the exact somatotype triplet. Each component is
// floored at zero; the formulas are the standard Heath-Carter equations.
func heathCarter(s *SanitizedEntry, adv *Advanced) HeathCarterTriplet {
	sk, c, b := adv.Skinfolds, adv.Circumferences, adv.BoneBreadths

	sumSkf := sk.TricepsMm + sk.SubscapularMm + sk.SupraspinaleMm
	endo := -0.7182 + 0.1451*sumSkf - 0.00068*sumSkf*sumSkf + 0.0000014*sumSkf*sumSkf*sumSkf

	correctedArm := c.FlexedArmCm - sk.TricepsMm/10
	correctedCalf := c.CalfCm - sk.CalfMm/10
	meso := 0.858*b.HumerusCm + 0.601*b.FemurCm + 0.188*correctedArm + 0.161*correctedCalf - 0.131*s.HeightCm + 4.5

	hwr := s.HeightCm / math.Cbrt(s.WeightKg)
	var ecto float64
	switch {
	case hwr > 40.75:
		ecto = 0.732*hwr - 28.58
	case hwr > 38.25:
		ecto = 0.463*hwr - 17.63
	default:
		ecto = 0.1
	}

	return HeathCarterTriplet{
		Endomorphy: math.Max(endo, 0),
		Mesomorphy: math.Max(meso, 0),
		Ectomorphy: math.Max(ecto, 0),
	}
}

// Simplified heuristic point values. Like the shape scorer weights these
// are tunable constants kept verbatim for result compatibility.
const (
	ptsWHtREndo       = 2
	ptsWHREndo        = 1
	ptsBMIEndo        = 1
	ptsSurveyFat      = 2
	ptsSurveyMuscle   = 2
	ptsBroadBones     = 1
	ptsBigArm         = 1
	ptsBigThigh       = 1
	ptsSHRMeso        = 1
	ptsThinWrist      = 2
	ptsThickWrist     = 1
	ptsSurveyHardGain = 2
	ptsLowBMI         = 2
	ptsMidBMIMeso     = 1
	ptsLowWHtR        = 1

	wristThinCm       = 16.0
	wristThickCm      = 18.0
	armGirthMesoCm    = 35.0
	thighGirthMesoCm  = 55.0
	bmiEndoThreshold  = 28.0
	bmiEctoThreshold  = 20.0
	whrEndoThreshold  = 0.9
	whtrEctoThreshold = 0.44
	shrMesoThreshold  = 1.05
)

// armGirth returns the best available upper-arm girth: the flexed-arm
// circumference when measured, otherwise the larger of the two arm
// measurements.
func armGirth(s *SanitizedEntry, adv *Advanced) (float64, bool) {
	if adv != nil && adv.Circumferences != nil && adv.Circumferences.FlexedArmCm > 0 {
		return adv.Circumferences.FlexedArmCm, true
	}
	return maxMeasurement(s, KeyLeftArm, KeyRightArm)
}

// thighGirth mirrors armGirth for the thigh.
func thighGirth(s *SanitizedEntry, adv *Advanced) (float64, bool) {
	if adv != nil && adv.Circumferences != nil && adv.Circumferences.ThighCm > 0 {
		return adv.Circumferences.ThighCm, true
	}
	return maxMeasurement(s, KeyLeftThigh, KeyRightThigh)
}

func maxMeasurement(s *SanitizedEntry, keys ...string) (float64, bool) {
	best := 0.0
	found := false
	for _, k := range keys {
		if v, ok := s.Measurements[k]; ok && v > best {
			best = v
			found = true
		}
	}
	return best, found
}

// simplifiedScores accumulates integer points into the three component
// buckets from whatever signals are available.
func simplifiedScores(s *SanitizedEntry, adv *Advanced, survey *Survey, ratios RatioSet) map[string]float64 {
	scores := map[string]float64{Endomorph: 0, Mesomorph: 0, Ectomorph: 0}

	if v, ok := ratios[RatioWHtR]; ok {
		if v >= whtrAppleThreshold {
			scores[Endomorph] += ptsWHtREndo
		}
		if v <= whtrEctoThreshold {
			scores[Ectomorph] += ptsLowWHtR
		}
	}
	if v, ok := ratios[RatioWHR]; ok && v >= whrEndoThreshold {
		scores[Endomorph] += ptsWHREndo
	}
	if v, ok := ratios[RatioSHR]; ok && v >= shrMesoThreshold {
		scores[Mesomorph] += ptsSHRMeso
	}

	if s.BMI > 0 {
		switch {
		case s.BMI >= bmiEndoThreshold:
			scores[Endomorph] += ptsBMIEndo
		case s.BMI < bmiEctoThreshold:
			scores[Ectomorph] += ptsLowBMI
		case s.BMI >= 24 && s.BMI <= 27:
			scores[Mesomorph] += ptsMidBMIMeso
		}
	}

	if wrist, ok := s.Measurements[KeyWrist]; ok {
		if wrist <= wristThinCm {
			scores[Ectomorph] += ptsThinWrist
		} else if wrist >= wristThickCm {
			scores[Mesomorph] += ptsThickWrist
		}
	}
	if arm, ok := armGirth(s, adv); ok && arm >= armGirthMesoCm {
		scores[Mesomorph] += ptsBigArm
	}
	if thigh, ok := thighGirth(s, adv); ok && thigh >= thighGirthMesoCm {
		scores[Mesomorph] += ptsBigThigh
	}

	if survey != nil {
		if survey.GainFatEasily {
			scores[Endomorph] += ptsSurveyFat
		}
		if survey.GainMuscleEasily {
			scores[Mesomorph] += ptsSurveyMuscle
		}
		if survey.HardToGainWeight {
			scores[Ectomorph] += ptsSurveyHardGain
		}
		if survey.BoneStructure == BoneBroad {
			scores[Mesomorph] += ptsBroadBones
		}
	}

	return scores
}

// normalizeBreakdown turns component scores into shares summing to 1.
// All-zero scores mean no evidence either way, which reads as balanced.
func normalizeBreakdown(scores map[string]float64) map[string]float64 {
	total := scores[Endomorph] + scores[Mesomorph] + scores[Ectomorph]
	out := make(map[string]float64, 3)
	if total == 0 {
		out[Endomorph], out[Mesomorph], out[Ectomorph] = 1.0/3, 1.0/3, 1.0/3
		return out
	}
	for k, v := range scores {
		out[k] = v / total
	}
	return out
}

// dominanceLabel derives the human-readable dominance pattern from a
// ranked breakdown.
func dominanceLabel(ranked []RankedLabel) string {
	if ranked[0].Probability >= dominantShare {
		return ranked[0].Label + " dominant"
	}
	if ranked[1].Probability >= blendShare {
		return fmt.Sprintf("%s-%s blend", ranked[0].Label, ranked[1].Label)
	}
	return BalancedLabel
}

// ClassifySomatotype estimates the build classification. The exact
// Heath-Carter path is taken whenever its full input set is present;
// otherwise the simplified point heuristic runs on whatever is available.
// This stage never hard-fails.
func ClassifySomatotype(s *SanitizedEntry, adv *Advanced, survey *Survey, ratios RatioSet) *SomatotypeResult {
	if hasExactInputs(s, adv) {
		triplet := heathCarter(s, adv)
		breakdown := normalizeBreakdown(map[string]float64{
			Endomorph: triplet.Endomorphy,
			Mesomorph: triplet.Mesomorphy,
			Ectomorph: triplet.Ectomorphy,
		})
		ranked := rankLabels(breakdown)
		return &SomatotypeResult{
			Method:    MethodHeathCarter,
			Dominant:  dominanceLabel(ranked),
			Breakdown: breakdown,
			Ranked:    ranked,
			Triplet:   &triplet,
			Reason: fmt.Sprintf("Heath-Carter triplet %.1f-%.1f-%.1f from full anthropometric data",
				triplet.Endomorphy, triplet.Mesomorphy, triplet.Ectomorphy),
		}
	}

	breakdown := normalizeBreakdown(simplifiedScores(s, adv, survey, ratios))
	ranked := rankLabels(breakdown)
	return &SomatotypeResult{
		Method:    MethodSimplified,
		Dominant:  dominanceLabel(ranked),
		Breakdown: breakdown,
		Ranked:    ranked,
		Reason:    "simplified point heuristic (incomplete skinfold/circumference data)",
	}
}
