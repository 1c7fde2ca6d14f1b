// Package rulesets implements the rule-set domain for Haven. Rule sets are
// versioned scoring configurations (feature weights plus level thresholds);
// exactly one may be active at a time and drives every evaluation. Stored
// history is never reinterpreted when the active rule set changes, because
// snapshots embed the weights and thresholds they were scored with.
package rulesets

import (
	"time"

	"github.com/google/uuid"

	"github.com/haven-app/haven/internal/risk"
)

// RuleSet is one stored version of the scoring configuration.
type RuleSet struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Version     int                `json:"version"`
	Weights     map[string]float64 `json:"weights"`
	Thresholds  risk.Thresholds    `json:"thresholds"`
	Description *string            `json:"description"`
	Active      bool               `json:"active"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Rules converts the stored record into the scorer's rule-set form.
func (r *RuleSet) Rules() risk.RuleSet {
	return risk.RuleSet{
		Weights:    r.Weights,
		Thresholds: r.Thresholds,
	}
}

// CreateCommand carries the data needed to create a new rule-set version.
// The version number is assigned by the store (next version for the name).
type CreateCommand struct {
	Name        string             `json:"name"`
	Weights     map[string]float64 `json:"weights"`
	Thresholds  risk.Thresholds    `json:"thresholds"`
	Description *string            `json:"description"`
}

// Validate applies the core rule-set invariants to the command.
func (c CreateCommand) Validate() error {
	if c.Name == "" {
		return ErrMissingName
	}
	rules := risk.RuleSet{Weights: c.Weights, Thresholds: c.Thresholds}
	return rules.Validate()
}
