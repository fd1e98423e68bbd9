// Package risk implements the heuristic scoring rules behind the
// dashboard's holder, project and manipulation-report assessments. All
// functions here are pure: inputs are already-fetched data, outputs are a
// bounded score, a categorical level and a set of human-readable flags.
package risk

import (
	"github.com/zotalabs/tokenwatch/internal/domain/entities"
)

// Score band boundaries. A clamped score s maps to exactly one level:
// s < 20 low, s < 40 medium, s < 70 high, else critical.
const (
	bandMedium   = 20
	bandHigh     = 40
	bandCritical = 70
)

// MaxScore is the upper clamp for every accumulated risk score.
const MaxScore = 100

// LevelForScore maps a clamped score to its risk level.
func LevelForScore(score int) string {
	switch {
	case score < bandMedium:
		return entities.RiskLow
	case score < bandHigh:
		return entities.RiskMedium
	case score < bandCritical:
		return entities.RiskHigh
	default:
		return entities.RiskCritical
	}
}

// ClampScore bounds an accumulated raw score to [0, MaxScore].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// Confidence grows with the number of detected flags from a per-heuristic
// base, capped at 95. More corroborating signals mean a firmer verdict;
// the cap keeps a heuristic from ever claiming certainty.
func Confidence(base, perFlag, flagCount int) int {
	c := base + perFlag*flagCount
	if c > 95 {
		return 95
	}
	return c
}
