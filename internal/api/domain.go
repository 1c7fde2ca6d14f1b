package api

import (
	"github.com/haven-app/haven/internal/assessments"
	"github.com/haven-app/haven/internal/rulesets"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	RuleSets    rulesets.System
	Assessments assessments.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	ruleSystem := rulesets.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	assessmentSystem := assessments.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
		ruleSystem,
		assessments.Options{
			MaterialityFloor: runtime.Rules.MaterialityFloor,
			HistoryDays:      runtime.Rules.HistoryDays,
		},
	)

	return &Domain{
		RuleSets:    ruleSystem,
		Assessments: assessmentSystem,
	}
}
