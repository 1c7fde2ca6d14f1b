package risk

import (
	"fmt"
	"math"
)

// FeatureDelta records how one feature's score moved between two assessments.
type FeatureDelta struct {
	Old    float64 `json:"old"`
	New    float64 `json:"new"`
	Change float64 `json:"change"`
}

// ChangeReport is the structured difference between two consecutive
// assessments for the same user. It is derived entirely from its inputs and
// never persisted. All fields except HasPrevious are absent when no previous
// assessment exists.
type ChangeReport struct {
	HasPrevious     bool                    `json:"has_previous"`
	ScoreChange     *float64                `json:"score_change,omitempty"`
	LevelChange     *Level                  `json:"level_change,omitempty"`
	NewReasons      []string                `json:"new_reasons,omitempty"`
	ResolvedReasons []string                `json:"resolved_reasons,omitempty"`
	FeatureChanges  map[string]FeatureDelta `json:"feature_changes,omitempty"`
}

// Diff compares current against the immediately preceding assessment.
// A nil previous yields {has_previous: false}. Both inputs must carry a
// level and feature scores; otherwise Diff fails with ErrMalformedAssessment.
// Diff is idempotent: identical inputs produce identical output.
func Diff(previous, current *Assessment) (*ChangeReport, error) {
	if current == nil {
		return nil, fmt.Errorf("%w: current assessment is nil", ErrMalformedAssessment)
	}
	if err := checkWellFormed(current); err != nil {
		return nil, err
	}
	if previous == nil {
		return &ChangeReport{HasPrevious: false}, nil
	}
	if err := checkWellFormed(previous); err != nil {
		return nil, err
	}

	scoreChange := round3(current.Score - previous.Score)

	report := &ChangeReport{
		HasPrevious:     true,
		ScoreChange:     &scoreChange,
		NewReasons:      missingFrom(current.Reasons, previous.Reasons),
		ResolvedReasons: missingFrom(previous.Reasons, current.Reasons),
		FeatureChanges:  featureChanges(previous.FeatureScores, current.FeatureScores),
	}

	if current.Level != previous.Level {
		level := current.Level
		report.LevelChange = &level
	}

	return report, nil
}

func checkWellFormed(a *Assessment) error {
	if a.Level == "" {
		return fmt.Errorf("%w: missing level", ErrMalformedAssessment)
	}
	if a.FeatureScores == nil {
		return fmt.Errorf("%w: missing feature scores", ErrMalformedAssessment)
	}
	if math.IsNaN(a.Score) {
		return fmt.Errorf("%w: score is not a number", ErrMalformedAssessment)
	}
	return nil
}

// missingFrom returns the elements of list absent from other, preserving
// list order so repeated diffs are byte-identical.
func missingFrom(list, other []string) []string {
	seen := make(map[string]struct{}, len(other))
	for _, s := range other {
		seen[s] = struct{}{}
	}

	var missing []string
	for _, s := range list {
		if _, ok := seen[s]; !ok {
			missing = append(missing, s)
		}
	}
	return missing
}

// featureChanges computes per-feature deltas over the union of both
// snapshots, treating missing features as 0. Zero deltas are omitted.
func featureChanges(previous, current FeatureVector) map[string]FeatureDelta {
	changes := make(map[string]FeatureDelta)

	record := func(name string) {
		if _, ok := changes[name]; ok {
			return
		}
		old := previous[name]
		next := current[name]
		if change := round3(next - old); change != 0 {
			changes[name] = FeatureDelta{Old: old, New: next, Change: change}
		}
	}

	for name := range current {
		record(name)
	}
	for name := range previous {
		record(name)
	}

	if len(changes) == 0 {
		return nil
	}
	return changes
}
