package risk

import (
	"fmt"
	"math"
)

// FeatureVector maps feature names to normalized scores in [0,1]. Keys are
// open-ended; the rule set, not the scorer, decides which keys carry weight.
type FeatureVector map[string]float64

// Clone returns a copy of the vector, or an empty vector for nil input.
func (f FeatureVector) Clone() FeatureVector {
	out := make(FeatureVector, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Coerce converts an untyped feature map (typically decoded JSON) into a
// FeatureVector. Non-numeric values become 0, NaN and infinities become 0,
// and out-of-range values are clamped into [0,1]. Each coercion produces a
// caller-visible warning; none of them aborts scoring (spec: availability
// over strictness).
func Coerce(raw map[string]any) (FeatureVector, []string) {
	features := make(FeatureVector, len(raw))
	var warnings []string

	for name, value := range raw {
		num, ok := toFloat(value)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("feature %q: non-numeric value %v coerced to 0", name, value))
			features[name] = 0
			continue
		}
		if math.IsNaN(num) || math.IsInf(num, 0) {
			warnings = append(warnings, fmt.Sprintf("feature %q: non-finite value coerced to 0", name))
			features[name] = 0
			continue
		}
		if num < 0 || num > 1 {
			warnings = append(warnings, fmt.Sprintf("feature %q: value %v clamped to [0,1]", name, num))
			num = clamp01(num)
		}
		features[name] = num
	}

	return features, warnings
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// round3 matches the original rule engine's presentation precision.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
