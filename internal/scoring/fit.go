// Package scoring estimates how well a garment will fit from optional body
// metrics. The score is a heuristic over the metrics only; it never inspects
// the generated image.
package scoring

import (
	"strings"

	"tryon/internal/domain"
)

const (
	defaultScore = 0.75
	baseScore    = 0.85

	// Tolerated deviation from the nominal scale factor of 1.0.
	proportionTolerance = 0.15
	proportionPenalty   = 0.10

	shoulderNarrow  = 42.0
	shoulderWide    = 50.0
	shoulderPenalty = 0.05
)

// Score maps optional body metrics to a fit score in [0, 1] and a
// human-readable explanation. Identical input always yields identical output.
func Score(m *domain.BodyMetrics) (float64, string) {
	if m == nil {
		return defaultScore, "Estimated fit based on standard sizing."
	}

	score := baseScore
	var notes []string

	deviation := m.ScaleFactor - 1.0
	switch {
	case deviation > proportionTolerance:
		score -= proportionPenalty
		notes = append(notes, "Proportions run larger than standard sizing.")
	case deviation < -proportionTolerance:
		score -= proportionPenalty
		notes = append(notes, "Proportions run smaller than standard sizing.")
	}

	switch {
	case m.ShoulderWidth < shoulderNarrow:
		notes = append(notes, "Consider a smaller size for shoulders.")
	case m.ShoulderWidth <= shoulderWide:
		notes = append(notes, "Good shoulder fit expected.")
	default:
		score -= shoulderPenalty
		notes = append(notes, "Consider a larger size for shoulders.")
	}

	return clamp(score), strings.Join(notes, " ")
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
