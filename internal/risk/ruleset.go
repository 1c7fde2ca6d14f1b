package risk

import (
	"fmt"
	"math"
)

// Thresholds are ascending cut points on the normalized score.
type Thresholds struct {
	Warn float64 `json:"warn"`
	High float64 `json:"high"`
}

// Classify maps a normalized score to a level.
func (t Thresholds) Classify(score float64) Level {
	switch {
	case score >= t.High:
		return LevelHigh
	case score >= t.Warn:
		return LevelWarn
	default:
		return LevelLow
	}
}

// RuleSet is one immutable version of the scoring configuration. Negative
// weights mark protective factors that reduce the aggregate score.
type RuleSet struct {
	Weights    map[string]float64 `json:"weights"`
	Thresholds Thresholds         `json:"thresholds"`
}

// Validate checks the rule-set invariants: at least one weight, finite
// weights, non-negative thresholds with warn <= high. Failures wrap
// ErrInvalidRuleSet.
func (r RuleSet) Validate() error {
	if len(r.Weights) == 0 {
		return fmt.Errorf("%w: weights are empty", ErrInvalidRuleSet)
	}
	for name, weight := range r.Weights {
		if math.IsNaN(weight) || math.IsInf(weight, 0) {
			return fmt.Errorf("%w: weight %q is not finite", ErrInvalidRuleSet, name)
		}
	}
	if math.IsNaN(r.Thresholds.Warn) || math.IsNaN(r.Thresholds.High) {
		return fmt.Errorf("%w: thresholds are not finite", ErrInvalidRuleSet)
	}
	if r.Thresholds.Warn < 0 || r.Thresholds.High < 0 {
		return fmt.Errorf("%w: thresholds must be non-negative", ErrInvalidRuleSet)
	}
	if r.Thresholds.Warn > r.Thresholds.High {
		return fmt.Errorf("%w: warn threshold %v exceeds high threshold %v",
			ErrInvalidRuleSet, r.Thresholds.Warn, r.Thresholds.High)
	}
	return nil
}
