package calculator

import (
	"math"
	"testing"
)

func TestCalculateSMA(t *testing.T) {
	got, err := CalculateSMA([]float64{1, 2, 3, 4, 5}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4 {
		t.Errorf("expected 4, got %.3f", got)
	}

	if _, err := CalculateSMA([]float64{1, 2}, 3); err == nil {
		t.Error("expected error for short input")
	}
	if _, err := CalculateSMA([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for zero period")
	}
}

func TestRollingSMA(t *testing.T) {
	got, err := RollingSMA([]float64{2, 4, 6, 8}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(got[0]) {
		t.Errorf("row 0: expected NaN, got %.3f", got[0])
	}
	want := []float64{3, 5, 7}
	for i, w := range want {
		if got[i+1] != w {
			t.Errorf("row %d: expected %.1f, got %.3f", i+1, w, got[i+1])
		}
	}
}

func TestCalculateRSI_Bounds(t *testing.T) {
	rising := make([]float64, 30)
	for i := range rising {
		rising[i] = float64(100 + i)
	}
	got, err := CalculateRSI(rising, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 100 {
		t.Errorf("expected 100 for monotonic rise, got %.3f", got)
	}

	falling := make([]float64, 30)
	for i := range falling {
		falling[i] = float64(100 - i)
	}
	got, _ = CalculateRSI(falling, 14)
	if got != 0 {
		t.Errorf("expected 0 for monotonic fall, got %.3f", got)
	}

	got, _ = CalculateRSI([]float64{1, 2, 3}, 14)
	if got != 50 {
		t.Errorf("expected default 50 on short input, got %.3f", got)
	}
}

func TestRollingRSI_SkipsLeadingGaps(t *testing.T) {
	nan := math.NaN()
	closes := []float64{nan, nan, 10, 11, 10, 11}
	got, err := RollingRSI(closes, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 4; i++ {
		if !math.IsNaN(got[i]) {
			t.Errorf("row %d: expected NaN, got %.3f", i, got[i])
		}
	}
	// First window: +1, -1 -> avg gain 0.5, avg loss 0.5.
	if got[4] != 50 {
		t.Errorf("row 4: expected 50, got %.3f", got[4])
	}
	// Next change +1: gain (0.5+1)/2=0.75, loss 0.25 -> RSI 75.
	if got[5] != 75 {
		t.Errorf("row 5: expected 75, got %.3f", got[5])
	}
}
