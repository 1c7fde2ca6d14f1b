package rulesets

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/haven-app/haven/pkg/query"
	"github.com/haven-app/haven/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "rule_sets", "r").
	Project("id", "ID").
	Project("name", "Name").
	Project("version", "Version").
	Project("weights", "Weights").
	Project("warn_threshold", "WarnThreshold").
	Project("high_threshold", "HighThreshold").
	Project("description", "Description").
	Project("active", "Active").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for rule-set queries.
// Nil fields are ignored.
type Filters struct {
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Name", f.Name).
		WhereEquals("Active", f.Active)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if a := values.Get("active"); a != "" {
		if active, err := strconv.ParseBool(a); err == nil {
			f.Active = &active
		}
	}

	return f
}

func scanRuleSet(s repository.Scanner) (RuleSet, error) {
	var r RuleSet
	var weightsRaw []byte

	err := s.Scan(
		&r.ID,
		&r.Name,
		&r.Version,
		&weightsRaw,
		&r.Thresholds.Warn,
		&r.Thresholds.High,
		&r.Description,
		&r.Active,
		&r.CreatedAt,
	)

	if err != nil {
		return r, err
	}

	if len(weightsRaw) > 0 {
		if err := json.Unmarshal(weightsRaw, &r.Weights); err != nil {
			return r, fmt.Errorf("unmarshal weights: %w", err)
		}
	}

	if r.Weights == nil {
		r.Weights = map[string]float64{}
	}

	return r, nil
}
