package risk

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// DefaultMaterialityFloor is the minimum absolute contribution a feature
// must exceed to appear in an assessment's reasons.
const DefaultMaterialityFloor = 0.01

// Scorer evaluates feature vectors against rule sets. The zero-cost
// constructor form Score uses the default materiality floor.
type Scorer struct {
	floor float64
}

// NewScorer creates a Scorer with the given materiality floor.
// Non-positive values fall back to DefaultMaterialityFloor.
func NewScorer(floor float64) *Scorer {
	if floor <= 0 {
		floor = DefaultMaterialityFloor
	}
	return &Scorer{floor: floor}
}

// Score evaluates features against rules using the default materiality floor.
func Score(features FeatureVector, rules RuleSet) (*Assessment, error) {
	return NewScorer(0).Score(features, rules)
}

type contribution struct {
	feature string
	value   float64
}

// Score computes the weighted aggregate of every feature named in the rule
// set (absent features contribute 0), clamps the raw sum into [0,1] without
// rescaling, classifies the level, and selects material contributions as
// ordered reasons. The returned assessment snapshots its inputs.
// Fails only when the rule set is invalid.
func (s *Scorer) Score(features FeatureVector, rules RuleSet) (*Assessment, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	var raw float64
	contributions := make([]contribution, 0, len(rules.Weights))
	for name, weight := range rules.Weights {
		value := features[name]
		c := weight * value
		raw += c
		contributions = append(contributions, contribution{feature: name, value: c})
	}

	score := round3(clamp01(raw))

	weights := make(map[string]float64, len(rules.Weights))
	for name, weight := range rules.Weights {
		weights[name] = weight
	}

	return &Assessment{
		Score:         score,
		Level:         rules.Thresholds.Classify(score),
		Reasons:       s.reasons(contributions),
		FeatureScores: features.Clone(),
		Weights:       weights,
		Thresholds:    rules.Thresholds,
		Timestamp:     time.Now().UTC(),
	}, nil
}

// reasons filters contributions to those exceeding the materiality floor,
// ordered by descending absolute contribution with feature name as the
// deterministic tie-break.
func (s *Scorer) reasons(contributions []contribution) []string {
	material := make([]contribution, 0, len(contributions))
	for _, c := range contributions {
		if abs(c.value) > s.floor {
			material = append(material, c)
		}
	}

	sort.Slice(material, func(i, j int) bool {
		a, b := abs(material[i].value), abs(material[j].value)
		if a != b {
			return a > b
		}
		return material[i].feature < material[j].feature
	})

	reasons := make([]string, len(material))
	for i, c := range material {
		reasons[i] = formatReason(c.feature, c.value)
	}
	return reasons
}

func formatReason(feature string, value float64) string {
	return fmt.Sprintf("%s contributed %s", feature, strconv.FormatFloat(round3(value), 'f', -1, 64))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
