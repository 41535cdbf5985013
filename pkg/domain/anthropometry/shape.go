package anthropometry

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Shape is a canonical body-shape category.
type Shape string

const (
	ShapeApple            Shape = "Apple"
	ShapePear             Shape = "Pear"
	ShapeRectangle        Shape = "Rectangle"
	ShapeInvertedTriangle Shape = "Inverted Triangle"
	ShapeHourglass        Shape = "Hourglass"
)

// AllShapes lists every category in cascade priority order.
var AllShapes = []Shape{ShapeApple, ShapeInvertedTriangle, ShapePear, ShapeRectangle, ShapeHourglass}

// Thresholds used by the rule cascade. The waist-hip cutoff is
// gender-dependent; the rest apply uniformly.
const (
	whtrAppleThreshold   = 0.5
	whrAppleFemale       = 0.85
	whrAppleOther        = 0.95
	shrInvertedThreshold = 1.05
	bhrInvertedThreshold = 1.05
	whrPearThreshold     = 0.8
	bhrPearThreshold     = 0.85
	shrPearThreshold     = 0.9
	whrRectangleCenter   = 0.825
	whrRectangleTol      = 0.025
	bhrBalancedCenter    = 1.0
	bhrBalancedTol       = 0.05
	shrBalancedCenter    = 1.0
	shrBalancedTol       = 0.05
	whrHourglassMax      = 0.8
)

// Scoring weights. These are tunable heuristics, not physiological
// constants: the match/coverage blend and the corroboration bonus were
// chosen empirically and kept for result compatibility.
const (
	matchWeight       = 0.7
	coverageWeight    = 0.3
	corroborationStep = 0.1
)

// RankedLabel is one entry of a ranked probability distribution.
type RankedLabel struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

// ClassificationResult is the outcome of shape classification. When
// Available is false no classification was attempted and Reason names the
// missing inputs.
type ClassificationResult struct {
	Available     bool               `json:"available"`
	Primary       string             `json:"primary,omitempty"`
	Confidence    float64            `json:"confidence,omitempty"`
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
	Ranked        []RankedLabel      `json:"ranked,omitempty"`
	Reason        string             `json:"reason"`
}

func whrThreshold(g Gender) float64 {
	if g == GenderFemale {
		return whrAppleFemale
	}
	return whrAppleOther
}

// shapeRule is one step of the ordered cascade. The first rule whose
// predicate fires decides the primary label; the probability distribution
// is computed independently by shapeScores.
type shapeRule struct {
	shape Shape
	match func(r RatioSet, g Gender) (bool, string)
}

func shapeRules() []shapeRule {
	return []shapeRule{
		{ShapeApple, func(r RatioSet, g Gender) (bool, string) {
			if v, ok := r[RatioWHtR]; ok && v >= whtrAppleThreshold {
				return true, fmt.Sprintf("waist-to-height ratio %.3f at or above %.2f", v, whtrAppleThreshold)
			}
			whr, hasWHR := r[RatioWHR]
			if !hasWHR || whr < whrThreshold(g) {
				return false, ""
			}
			if v, ok := r[RatioBHR]; ok && v >= 0.95 {
				return true, fmt.Sprintf("waist-to-hip ratio %.3f with upper-body dominance (BHR %.3f)", whr, v)
			}
			if v, ok := r[RatioSHR]; ok && v >= 1.0 {
				return true, fmt.Sprintf("waist-to-hip ratio %.3f with upper-body dominance (SHR %.3f)", whr, v)
			}
			return false, ""
		}},
		{ShapeInvertedTriangle, func(r RatioSet, g Gender) (bool, string) {
			if v, ok := r[RatioSHR]; ok && v >= shrInvertedThreshold {
				return true, fmt.Sprintf("shoulders clearly exceed hips (SHR %.3f)", v)
			}
			if v, ok := r[RatioBHR]; ok && v >= bhrInvertedThreshold {
				return true, fmt.Sprintf("chest clearly exceeds hips (BHR %.3f)", v)
			}
			return false, ""
		}},
		{ShapePear, func(r RatioSet, g Gender) (bool, string) {
			whr, ok := r[RatioWHR]
			if !ok || whr >= whrPearThreshold {
				return false, ""
			}
			if v, ok := r[RatioBHR]; ok && v <= bhrPearThreshold {
				return true, fmt.Sprintf("hips dominate waist (WHR %.3f) and chest (BHR %.3f)", whr, v)
			}
			if v, ok := r[RatioSHR]; ok && v < shrPearThreshold {
				return true, fmt.Sprintf("hips dominate waist (WHR %.3f) and shoulders (SHR %.3f)", whr, v)
			}
			return false, ""
		}},
		{ShapeRectangle, func(r RatioSet, g Gender) (bool, string) {
			whr, hasWHR := r[RatioWHR]
			bhr, hasBHR := r[RatioBHR]
			if !hasWHR || !hasBHR {
				return false, ""
			}
			if math.Abs(whr-whrRectangleCenter) > whrRectangleTol || math.Abs(bhr-bhrBalancedCenter) > bhrBalancedTol {
				return false, ""
			}
			if shr, ok := r[RatioSHR]; ok && math.Abs(shr-shrBalancedCenter) > shrBalancedTol {
				return false, ""
			}
			return true, fmt.Sprintf("waist, chest and hips near uniform (WHR %.3f, BHR %.3f)", whr, bhr)
		}},
		{ShapeHourglass, func(r RatioSet, g Gender) (bool, string) {
			bhr, hasBHR := r[RatioBHR]
			whr, hasWHR := r[RatioWHR]
			if !hasBHR || !hasWHR {
				return false, ""
			}
			if math.Abs(bhr-bhrBalancedCenter) <= bhrBalancedTol && whr <= whrHourglassMax {
				return true, fmt.Sprintf("balanced chest and hips (BHR %.3f) with defined waist (WHR %.3f)", bhr, whr)
			}
			return false, ""
		}},
	}
}

// above rewards values exceeding a threshold, scaled by the threshold.
func above(v, threshold float64) float64 { return (v - threshold) / threshold }

// below rewards values under a threshold, scaled by the threshold.
func below(v, threshold float64) float64 { return (threshold - v) / threshold }

// near rewards proximity to a center within a tolerance band; outside the
// band the signal goes negative fast.
func near(v, center, tol float64) float64 { return (tol - math.Abs(v-center)) / tol }

// shapeScores computes the raw per-category score: a distance-to-threshold
// match signal (max across the category's defining ratios), a coverage term
// for how many of those ratios were present, and small corroboration
// bonuses from secondary ratios.
func shapeScores(r RatioSet, g Gender) map[Shape]float64 {
	scores := make(map[Shape]float64, len(AllShapes))

	score := func(signals []float64, present, relevant int, bonus float64) float64 {
		match := 0.0
		for i, s := range signals {
			if i == 0 || s > match {
				match = s
			}
		}
		coverage := 0.0
		if relevant > 0 {
			coverage = float64(present) / float64(relevant)
		}
		return matchWeight*match + coverageWeight*coverage + bonus
	}

	// Apple: central adiposity signals, corroborated by upper-body dominance.
	{
		var signals []float64
		present := 0
		if v, ok := r[RatioWHtR]; ok {
			present++
			signals = append(signals, above(v, whtrAppleThreshold))
		}
		if v, ok := r[RatioWHR]; ok {
			present++
			signals = append(signals, above(v, whrThreshold(g)))
		}
		bonus := 0.0
		if v, ok := r[RatioBHR]; ok && v >= 0.95 {
			bonus += corroborationStep
		}
		if v, ok := r[RatioSHR]; ok && v >= 1.0 {
			bonus += corroborationStep
		}
		scores[ShapeApple] = score(signals, present, 2, bonus)
	}

	// Inverted triangle: shoulder/chest excess over hips.
	{
		var signals []float64
		present := 0
		if v, ok := r[RatioSHR]; ok {
			present++
			signals = append(signals, above(v, shrInvertedThreshold))
		}
		if v, ok := r[RatioBHR]; ok {
			present++
			signals = append(signals, above(v, bhrInvertedThreshold))
		}
		bonus := 0.0
		if v, ok := r[RatioSWR]; ok && v >= 1.2 {
			bonus += corroborationStep
		}
		scores[ShapeInvertedTriangle] = score(signals, present, 2, bonus)
	}

	// Pear: hip dominance over waist and chest.
	{
		var signals []float64
		present := 0
		if v, ok := r[RatioWHR]; ok {
			present++
			signals = append(signals, below(v, whrPearThreshold))
		}
		if v, ok := r[RatioBHR]; ok {
			present++
			signals = append(signals, below(v, bhrPearThreshold))
		}
		bonus := 0.0
		if v, ok := r[RatioSHR]; ok && v < shrPearThreshold {
			bonus += corroborationStep
		}
		scores[ShapePear] = score(signals, present, 2, bonus)
	}

	// Rectangle: waist near the uniform band, corroborated by balanced
	// chest and shoulders.
	{
		var signals []float64
		present := 0
		if v, ok := r[RatioWHR]; ok {
			present++
			signals = append(signals, near(v, whrRectangleCenter, whrRectangleTol))
		}
		bonus := 0.0
		if v, ok := r[RatioBHR]; ok && math.Abs(v-bhrBalancedCenter) <= bhrBalancedTol {
			bonus += corroborationStep
		}
		if v, ok := r[RatioSHR]; ok && math.Abs(v-shrBalancedCenter) <= shrBalancedTol {
			bonus += corroborationStep
		}
		scores[ShapeRectangle] = score(signals, present, 1, bonus)
	}

	// Hourglass: balanced chest/hips with a defined waist.
	{
		var signals []float64
		present := 0
		if v, ok := r[RatioBHR]; ok {
			present++
			signals = append(signals, near(v, bhrBalancedCenter, bhrBalancedTol))
		}
		if v, ok := r[RatioWHR]; ok {
			present++
			signals = append(signals, below(v, whrHourglassMax))
		}
		bonus := 0.0
		if v, ok := r[RatioSWR]; ok && v >= 1.25 {
			bonus += corroborationStep
		}
		scores[ShapeHourglass] = score(signals, present, 2, bonus)
	}

	return scores
}

// softmax turns raw scores into a probability distribution. Scores are
// shifted by the maximum before exponentiation for numerical stability.
func softmax(scores map[Shape]float64) map[string]float64 {
	maxScore := math.Inf(-1)
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	probs := make(map[string]float64, len(scores))
	sum := 0.0
	for shape, s := range scores {
		e := math.Exp(s - maxScore)
		probs[string(shape)] = e
		sum += e
	}
	for label := range probs {
		probs[label] /= sum
	}
	return probs
}

// rankLabels sorts a distribution by probability descending, breaking ties
// alphabetically so identical inputs always rank identically.
func rankLabels(probs map[string]float64) []RankedLabel {
	ranked := make([]RankedLabel, 0, len(probs))
	for label, p := range probs {
		ranked = append(ranked, RankedLabel{Label: label, Probability: p})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Probability != ranked[j].Probability {
			return ranked[i].Probability > ranked[j].Probability
		}
		return ranked[i].Label < ranked[j].Label
	})
	return ranked
}

// ClassifyShape assigns a body-shape category from the sanitized entry and
// its ratios. The ordered cascade decides the primary label; the softmax
// distribution over all categories is always reported, and serves as the
// fallback when no rule fires.
func ClassifyShape(s *SanitizedEntry, ratios RatioSet) ClassificationResult {
	var missing []string
	for _, key := range []string{KeyWaist, KeyHip, KeyChest} {
		if _, ok := s.Measurements[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return ClassificationResult{
			Available: false,
			Reason:    fmt.Sprintf("shape classification unavailable: missing %s", strings.Join(missing, ", ")),
		}
	}

	probs := softmax(shapeScores(ratios, s.Gender))
	ranked := rankLabels(probs)

	for _, rule := range shapeRules() {
		if ok, reason := rule.match(ratios, s.Gender); ok {
			return ClassificationResult{
				Available:     true,
				Primary:       string(rule.shape),
				Confidence:    probs[string(rule.shape)],
				Probabilities: probs,
				Ranked:        ranked,
				Reason:        reason,
			}
		}
	}

	top := ranked[0]
	return ClassificationResult{
		Available:     true,
		Primary:       top.Label,
		Confidence:    top.Probability,
		Probabilities: probs,
		Ranked:        ranked,
		Reason:        "Selected via probability tie-break.",
	}
}
