package anthropometry

import "strings"

// maxTips caps the merged suggestion list.
const maxTips = 6

// shapeTips is the curated coaching table keyed by shape label. The table
// is immutable by convention; nothing writes to it after init.
var shapeTips = map[string][]string{
	string(ShapeApple): {
		"Prioritise waist circumference over scale weight when tracking progress.",
		"Favour lower-glycaemic carbohydrate sources to help manage central fat storage.",
		"Add two or three weekly sessions of moderate cardio such as brisk walking or cycling.",
		"Core strength work improves posture but will not spot-reduce waist fat.",
	},
	string(ShapePear): {
		"Balance lower-body strength with upper-body pulling and pressing work.",
		"Shoulder and back development visually balances wider hips.",
		"Keep protein intake steady through the day to support lean upper-body gains.",
		"Step-ups and hill work use your naturally strong hip musculature.",
	},
	string(ShapeRectangle): {
		"Compound lifts build the shoulder and hip definition a straight frame lacks.",
		"A modest calorie surplus with progressive overload adds shape faster than cardio volume.",
		"Train waist-narrowing posture work alongside oblique strength.",
		"Track measurements, not just weight: frame changes show up in ratios first.",
	},
	string(ShapeInvertedTriangle): {
		"Emphasise glute and leg volume to balance a dominant upper body.",
		"Squats, lunges and hip thrusts should anchor your programme.",
		"Keep upper-body sessions in a maintenance range while legs catch up.",
		"Hamstring flexibility work offsets heavy pressing routines.",
	},
	string(ShapeHourglass): {
		"Maintain balance: train upper and lower body with equal weekly volume.",
		"Your proportions respond well to full-body strength programming.",
		"Avoid long calorie deficits that cost lean mass from both ends of the frame.",
		"Rotational core work preserves your natural waist definition.",
	},
}

// somatotypeTips is keyed by component label, plus the Balanced fallback.
var somatotypeTips = map[string][]string{
	Endomorph: {
		"Anchor meals around protein and fibre to control energy intake without hunger.",
		"Daily step count moves the needle more than occasional intense sessions.",
		"Strength training preserves muscle while you manage body fat.",
	},
	Mesomorph: {
		"You respond quickly to training: rotate programmes every 8-12 weeks to keep progressing.",
		"Guard against overreaching; fast adaptation tempts excessive volume.",
		"Match carbohydrate intake to training days for best recomposition.",
	},
	Ectomorph: {
		"Eat in a consistent surplus; liquid calories help if appetite is limiting.",
		"Keep cardio brief and favour heavy compound lifts with long rests.",
		"Sleep is your cheapest mass-gain tool: protect 8 hours.",
	},
	BalancedLabel: {
		"No single build dominates: a general strength and conditioning programme fits you well.",
		"Reassess measurements every few months; your balanced profile can drift either way.",
		"Set goals by performance rather than physique category.",
	},
}

// somatotypeLookupKeys extracts the table keys from a dominance label:
// "Ectomorph dominant" yields [Ectomorph], "Endomorph-Mesomorph blend"
// yields both components, "Balanced" yields itself.
func somatotypeLookupKeys(dominant string) []string {
	label := strings.TrimSuffix(dominant, " dominant")
	label = strings.TrimSuffix(label, " blend")
	if label == BalancedLabel {
		return []string{BalancedLabel}
	}
	return strings.Split(label, "-")
}

// SynthesizeTips merges the curated suggestions for the winning shape and
// the top somatotype components into a deduplicated, order-stable list of
// at most maxTips entries. When neither classification is available it
// falls back to the Balanced set. Pure lookup and merge; no scoring.
func SynthesizeTips(shape ClassificationResult, somatotype *SomatotypeResult) []string {
	var pool []string
	if shape.Available {
		pool = append(pool, shapeTips[shape.Primary]...)
	}
	if somatotype != nil {
		for _, key := range somatotypeLookupKeys(somatotype.Dominant) {
			pool = append(pool, somatotypeTips[key]...)
		}
	}
	if len(pool) == 0 {
		pool = somatotypeTips[BalancedLabel]
	}

	seen := make(map[string]struct{}, len(pool))
	tips := make([]string, 0, maxTips)
	for _, tip := range pool {
		if _, dup := seen[tip]; dup {
			continue
		}
		seen[tip] = struct{}{}
		tips = append(tips, tip)
		if len(tips) == maxTips {
			break
		}
	}
	return tips
}
