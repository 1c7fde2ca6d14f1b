package risk

import "errors"

// Sentinel errors for scoring and diffing. Both are fatal for the call that
// raised them and are surfaced to the caller unmodified; retrying a pure
// function with the same inputs cannot succeed.
var (
	ErrInvalidRuleSet      = errors.New("invalid rule set")
	ErrMalformedAssessment = errors.New("malformed assessment")
)
