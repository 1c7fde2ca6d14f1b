package rulesets

import (
	"errors"
	"net/http"

	"github.com/haven-app/haven/internal/risk"
)

// Domain errors for rule-set operations.
var (
	ErrNotFound     = errors.New("rule set not found")
	ErrDuplicate    = errors.New("rule set version already exists")
	ErrNoActive     = errors.New("no active rule set")
	ErrActiveDelete = errors.New("active rule set cannot be deleted")
	ErrMissingName  = errors.New("rule set name required")
)

// MapHTTPStatus maps rule-set domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoActive) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrActiveDelete) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrMissingName) || errors.Is(err, risk.ErrInvalidRuleSet) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
