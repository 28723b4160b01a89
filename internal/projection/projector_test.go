package projection

import (
	"math"
	"testing"
)

func TestProject_CeilsPartialQuarters(t *testing.T) {
	// Depth 5 at 2.0 cleared per quarter: 2.5 quarters rounds up to 3.
	depths := map[int]int{24: 5}
	rates := map[int]float64{24: 2.0}

	out := Project(depths, rates)

	if out[24].Quarters != 3 {
		t.Errorf("expected 3 quarters, got %f", out[24].Quarters)
	}
	if out[24].Years != 0.75 {
		t.Errorf("expected 0.75 years, got %f", out[24].Years)
	}
}

func TestProject_ZeroRateIsInfinite(t *testing.T) {
	depths := map[int]int{22: 10, 23: 0, 24: 1}
	rates := map[int]float64{} // nothing cleared

	out := Project(depths, rates)

	for class, p := range out {
		if !math.IsInf(p.Quarters, 1) {
			t.Errorf("class %d: expected +Inf quarters, got %f", class, p.Quarters)
		}
		if !math.IsInf(p.Years, 1) {
			t.Errorf("class %d: expected +Inf years, got %f", class, p.Years)
		}
	}
}

func TestProject_ExactDivision(t *testing.T) {
	depths := map[int]int{24: 6}
	rates := map[int]float64{24: 2.0}

	out := Project(depths, rates)

	if out[24].Quarters != 3 {
		t.Errorf("expected 3 quarters for exact division, got %f", out[24].Quarters)
	}
}

func TestProject_EmptyQueue(t *testing.T) {
	depths := map[int]int{}
	rates := map[int]float64{22: 1.5, 23: 2.0, 24: 4.0}

	out := Project(depths, rates)

	for class, p := range out {
		if p.Quarters != 0 {
			t.Errorf("class %d: expected 0 quarters for empty queue, got %f", class, p.Quarters)
		}
	}
}

func TestProject_CoversAllRecognizedClasses(t *testing.T) {
	out := Project(nil, nil)
	for _, class := range []int{22, 23, 24} {
		if _, ok := out[class]; !ok {
			t.Errorf("expected projection for class %d", class)
		}
	}
}
