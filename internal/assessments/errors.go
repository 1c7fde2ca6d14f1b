package assessments

import (
	"errors"
	"net/http"

	"github.com/haven-app/haven/internal/risk"
	"github.com/haven-app/haven/internal/rulesets"
)

// Domain errors for assessment operations.
var (
	ErrNotFound    = errors.New("snapshot not found")
	ErrMissingUser = errors.New("user id required")
	ErrInvalidDays = errors.New("days must be between 1 and 365")
)

// MapHTTPStatus maps assessment domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, rulesets.ErrNoActive) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrMissingUser) ||
		errors.Is(err, ErrInvalidDays) ||
		errors.Is(err, risk.ErrInvalidRuleSet) ||
		errors.Is(err, risk.ErrMalformedAssessment) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
