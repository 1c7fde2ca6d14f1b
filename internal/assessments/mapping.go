package assessments

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/haven-app/haven/pkg/query"
	"github.com/haven-app/haven/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "risk_snapshots", "s").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("rule_set_id", "RuleSetID").
	Project("score", "Score").
	Project("level", "Level").
	Project("reasons", "Reasons").
	Project("feature_scores", "FeatureScores").
	Project("weights", "Weights").
	Project("warn_threshold", "WarnThreshold").
	Project("high_threshold", "HighThreshold").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for snapshot queries.
// Nil fields are ignored.
type Filters struct {
	UserID *uuid.UUID `json:"user_id,omitempty"`
	Level  *string    `json:"level,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("UserID", f.UserID).
		WhereEquals("Level", f.Level)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if u := values.Get("user_id"); u != "" {
		if id, err := uuid.Parse(u); err == nil {
			f.UserID = &id
		}
	}

	if l := values.Get("level"); l != "" {
		f.Level = &l
	}

	return f
}

func scanSnapshot(s repository.Scanner) (Snapshot, error) {
	var snap Snapshot
	var reasonsRaw, scoresRaw, weightsRaw []byte

	err := s.Scan(
		&snap.ID,
		&snap.UserID,
		&snap.RuleSetID,
		&snap.Score,
		&snap.Level,
		&reasonsRaw,
		&scoresRaw,
		&weightsRaw,
		&snap.Thresholds.Warn,
		&snap.Thresholds.High,
		&snap.CreatedAt,
	)

	if err != nil {
		return snap, err
	}

	if len(reasonsRaw) > 0 {
		if err := json.Unmarshal(reasonsRaw, &snap.Reasons); err != nil {
			return snap, fmt.Errorf("unmarshal reasons: %w", err)
		}
	}
	if snap.Reasons == nil {
		snap.Reasons = []string{}
	}

	if len(scoresRaw) > 0 {
		if err := json.Unmarshal(scoresRaw, &snap.FeatureScores); err != nil {
			return snap, fmt.Errorf("unmarshal feature_scores: %w", err)
		}
	}
	if snap.FeatureScores == nil {
		snap.FeatureScores = map[string]float64{}
	}

	if len(weightsRaw) > 0 {
		if err := json.Unmarshal(weightsRaw, &snap.Weights); err != nil {
			return snap, fmt.Errorf("unmarshal weights: %w", err)
		}
	}
	if snap.Weights == nil {
		snap.Weights = map[string]float64{}
	}

	return snap, nil
}
