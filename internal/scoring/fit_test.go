package scoring

import (
	"math"
	"strings"
	"testing"

	"tryon/internal/domain"
)

func TestScoreWithoutMetrics(t *testing.T) {
	score, notes := Score(nil)
	if score != 0.75 {
		t.Fatalf("score = %v, want 0.75", score)
	}
	if notes != "Estimated fit based on standard sizing." {
		t.Fatalf("notes = %q", notes)
	}
}

func TestScoreNominalMetrics(t *testing.T) {
	score, notes := Score(&domain.BodyMetrics{ScaleFactor: 1.0, ShoulderWidth: 45})
	if score != 0.85 {
		t.Fatalf("score = %v, want 0.85", score)
	}
	if notes != "Good shoulder fit expected." {
		t.Fatalf("notes = %q", notes)
	}
}

func TestScoreProportionPenaltyAndNarrowShoulders(t *testing.T) {
	score, notes := Score(&domain.BodyMetrics{ScaleFactor: 1.2, ShoulderWidth: 38})
	if score != 0.75 {
		t.Fatalf("score = %v, want 0.75", score)
	}
	if !strings.Contains(notes, "Consider a smaller size for shoulders.") {
		t.Fatalf("notes = %q, want shoulder guidance", notes)
	}
}

func TestScoreAlwaysInRange(t *testing.T) {
	cases := []domain.BodyMetrics{
		{ScaleFactor: 50, ShoulderWidth: -5},
		{ScaleFactor: -10, ShoulderWidth: 300},
		{ScaleFactor: 0, ShoulderWidth: 0},
		{ScaleFactor: 1.0, ShoulderWidth: 45, Waist: -1, Hip: 9999},
	}
	for _, m := range cases {
		score, _ := Score(&m)
		if score < 0 || score > 1 {
			t.Fatalf("score out of range for %+v: %v", m, score)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	m := &domain.BodyMetrics{ScaleFactor: 1.2, ShoulderWidth: 55, Waist: 80, Hip: 95}
	s1, n1 := Score(m)
	s2, n2 := Score(m)
	if s1 != s2 || n1 != n2 {
		t.Fatalf("scoring not deterministic: (%v,%q) vs (%v,%q)", s1, n1, s2, n2)
	}
}

func TestScoreWideShoulders(t *testing.T) {
	score, notes := Score(&domain.BodyMetrics{ScaleFactor: 1.0, ShoulderWidth: 55})
	if math.Abs(score-0.80) > 1e-9 {
		t.Fatalf("score = %v, want 0.80", score)
	}
	if !strings.Contains(notes, "Consider a larger size for shoulders.") {
		t.Fatalf("notes = %q", notes)
	}
}
