package anthropometry

import "testing"

func TestSynthesizeTips_MergesShapeAndSomatotype(t *testing.T) {
	shape := ClassificationResult{Available: true, Primary: string(ShapeApple)}
	soma := &SomatotypeResult{Dominant: "Endomorph dominant"}

	tips := SynthesizeTips(shape, soma)

	if len(tips) == 0 || len(tips) > maxTips {
		t.Fatalf("tip count = %d, want 1..%d", len(tips), maxTips)
	}
	seen := map[string]bool{}
	for _, tip := range tips {
		if seen[tip] {
			t.Errorf("duplicate tip: %q", tip)
		}
		seen[tip] = true
	}
	if tips[0] != shapeTips[string(ShapeApple)][0] {
		t.Errorf("shape tips should lead the list, got %q", tips[0])
	}
}

func TestSynthesizeTips_BlendUsesBothComponents(t *testing.T) {
	shape := ClassificationResult{Available: false}
	soma := &SomatotypeResult{Dominant: "Endomorph-Mesomorph blend"}

	tips := SynthesizeTips(shape, soma)

	if len(tips) != maxTips {
		t.Fatalf("two 3-tip component sets should fill the cap, got %d", len(tips))
	}
	if tips[0] != somatotypeTips[Endomorph][0] {
		t.Errorf("first tip should come from the top component, got %q", tips[0])
	}
	if tips[3] != somatotypeTips[Mesomorph][0] {
		t.Errorf("fourth tip should come from the second component, got %q", tips[3])
	}
}

func TestSynthesizeTips_BalancedFallback(t *testing.T) {
	tips := SynthesizeTips(ClassificationResult{Available: false}, nil)

	if len(tips) != len(somatotypeTips[BalancedLabel]) {
		t.Fatalf("expected the balanced fallback set, got %v", tips)
	}
	for i, tip := range somatotypeTips[BalancedLabel] {
		if tips[i] != tip {
			t.Errorf("tip %d = %q, want %q", i, tips[i], tip)
		}
	}
}

func TestSynthesizeTips_CapAtSix(t *testing.T) {
	shape := ClassificationResult{Available: true, Primary: string(ShapeRectangle)}
	soma := &SomatotypeResult{Dominant: "Mesomorph-Ectomorph blend"}

	tips := SynthesizeTips(shape, soma)
	if len(tips) != maxTips {
		t.Errorf("tip count = %d, want capped at %d", len(tips), maxTips)
	}
}

func TestSynthesizeTips_OrderStable(t *testing.T) {
	shape := ClassificationResult{Available: true, Primary: string(ShapeHourglass)}
	soma := &SomatotypeResult{Dominant: "Ectomorph dominant"}

	first := SynthesizeTips(shape, soma)
	second := SynthesizeTips(shape, soma)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("tip order unstable at %d: %q vs %q", i, first[i], second[i])
		}
	}
}
