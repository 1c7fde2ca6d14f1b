// Package assessments implements the risk-history domain for Haven: an
// append-only store of per-user risk snapshots plus the evaluation
// orchestration that ties signal extraction, the active rule set, and the
// scorer together. Snapshots embed the weights and thresholds they were
// scored with, so activating a new rule set never reinterprets history.
package assessments

import (
	"time"

	"github.com/google/uuid"

	"github.com/haven-app/haven/internal/risk"
	"github.com/haven-app/haven/internal/signals"
)

// Snapshot is one stored risk assessment for a user.
type Snapshot struct {
	ID            uuid.UUID          `json:"id"`
	UserID        uuid.UUID          `json:"user_id"`
	RuleSetID     uuid.UUID          `json:"rule_set_id"`
	Score         float64            `json:"score"`
	Level         risk.Level         `json:"level"`
	Reasons       []string           `json:"reasons"`
	FeatureScores risk.FeatureVector `json:"feature_scores"`
	Weights       map[string]float64 `json:"weights"`
	Thresholds    risk.Thresholds    `json:"thresholds"`
	CreatedAt     time.Time          `json:"created_at"`
}

// Assessment reconstructs the core assessment form from stored data,
// suitable for change tracking.
func (s *Snapshot) Assessment() *risk.Assessment {
	return &risk.Assessment{
		Score:         s.Score,
		Level:         s.Level,
		Reasons:       s.Reasons,
		FeatureScores: s.FeatureScores,
		Weights:       s.Weights,
		Thresholds:    s.Thresholds,
		Timestamp:     s.CreatedAt,
	}
}

// EvaluateCommand carries the inputs for one evaluation. Features are
// caller-supplied pre-computed scores; Signals are raw activity to run
// through the extractor. Explicit features override extracted ones on key
// collision. Persist controls whether the result is appended to history.
type EvaluateCommand struct {
	UserID   uuid.UUID      `json:"user_id"`
	Features map[string]any `json:"features,omitempty"`
	Signals  *signals.Input `json:"signals,omitempty"`
	Persist  bool           `json:"persist"`
}

// Validate checks that the command names a user.
func (c EvaluateCommand) Validate() error {
	if c.UserID == uuid.Nil {
		return ErrMissingUser
	}
	return nil
}

// Evaluation is the result of one evaluation request. SnapshotID is set
// only when the result was persisted. Warnings carry feature-coercion
// notices; they never fail the evaluation.
type Evaluation struct {
	Assessment *risk.Assessment `json:"assessment"`
	RuleSetID  uuid.UUID        `json:"rule_set_id"`
	SnapshotID *uuid.UUID       `json:"snapshot_id,omitempty"`
	Warnings   []string         `json:"warnings,omitempty"`
}

// HistoryPoint is one entry in a user's chronological risk trend.
type HistoryPoint struct {
	Timestamp time.Time  `json:"timestamp"`
	Score     float64    `json:"score"`
	Level     risk.Level `json:"level"`
}
