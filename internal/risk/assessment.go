// Package risk implements the risk-insights aggregation and change-tracking
// model for Haven. It combines a feature vector with a weighted rule set into
// a scored, leveled, explained assessment, and computes structured deltas
// between consecutive assessments. Everything in this package is a pure
// function of its inputs: no I/O, no shared state, safe for concurrent use.
package risk

import "time"

// Level is the discrete classification of an assessment score.
type Level string

// Levels produced by the scorer, ordered by severity.
// LevelDemo is reserved for unauthenticated/sample presentation and is
// applied by callers; the scorer never emits it.
const (
	LevelLow  Level = "low"
	LevelWarn Level = "warn"
	LevelHigh Level = "high"
	LevelDemo Level = "demo"
)

// Assessment is one immutable evaluation result. FeatureScores, Weights, and
// Thresholds snapshot the inputs used, so later rule-set changes never
// reinterpret stored history.
type Assessment struct {
	Score         float64            `json:"score"`
	Level         Level              `json:"level"`
	Reasons       []string           `json:"reasons"`
	FeatureScores FeatureVector      `json:"feature_scores"`
	Weights       map[string]float64 `json:"weights"`
	Thresholds    Thresholds         `json:"thresholds"`
	Timestamp     time.Time          `json:"timestamp"`
}
