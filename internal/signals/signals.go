// Package signals derives normalized risk features from raw user activity:
// journal entries, check-in adherence, breathing-exercise telemetry, guided
// questionnaire ratings, and opaque chat-analysis scores. The output is a
// risk.FeatureVector consumed by the scorer; every value lands in [0,1].
package signals

import (
	"context"
	"math"
	"time"

	"github.com/haven-app/haven/internal/risk"
)

// Feature names emitted by the extractor.
const (
	FeatureMoodDrop         = "mood_drop_7d"
	FeatureNegativeLanguage = "negative_language"
	FeatureSafetyLow        = "safety_low"
	FeatureMissedCheckins   = "missed_checkins"
	FeatureGameStress       = "game_telemetry_stress"
)

// QuestionSafety is the guided-questionnaire key feeding FeatureSafetyLow,
// a self-rated 0-10 safety score.
const QuestionSafety = "safety"

// JournalEntry is one plaintext journal entry. Decryption happens upstream;
// this package never sees ciphertext.
type JournalEntry struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// CheckinStats summarizes scheduled versus completed safety check-ins.
type CheckinStats struct {
	Expected  int `json:"expected"`
	Completed int `json:"completed"`
}

// GameTelemetry summarizes breathing-exercise sessions from the game overlay.
// PaceDeviation is the mean absolute deviation from the guided breath pace,
// already normalized to [0,1] by the client.
type GameTelemetry struct {
	Sessions      int     `json:"sessions"`
	Abandoned     int     `json:"abandoned"`
	PaceDeviation float64 `json:"pace_deviation"`
}

// Input bundles the raw signals for one evaluation. All fields are optional;
// absent sources simply produce no features.
type Input struct {
	Journals      []JournalEntry     `json:"journals,omitempty"`
	Checkins      *CheckinStats      `json:"checkins,omitempty"`
	Telemetry     *GameTelemetry     `json:"telemetry,omitempty"`
	Questionnaire map[string]float64 `json:"questionnaire,omitempty"`
	Chat          map[string]float64 `json:"chat,omitempty"`
}

// Empty reports whether the input carries no signals at all.
func (in Input) Empty() bool {
	return len(in.Journals) == 0 &&
		in.Checkins == nil &&
		in.Telemetry == nil &&
		len(in.Questionnaire) == 0 &&
		len(in.Chat) == 0
}

// Extract derives a feature vector from the input. Journal entries are
// analyzed concurrently; the only error condition is context cancellation.
// Chat-analysis scores pass through under their own keys, clamped to [0,1];
// non-finite values are dropped.
func Extract(ctx context.Context, in Input) (risk.FeatureVector, error) {
	features := make(risk.FeatureVector)

	if len(in.Journals) > 0 {
		results, err := analyzeJournals(ctx, in.Journals, time.Now())
		if err != nil {
			return nil, err
		}
		features[FeatureMoodDrop] = moodDrop(results)
		features[FeatureNegativeLanguage] = negativeLanguage(results)
	}

	if in.Checkins != nil && in.Checkins.Expected > 0 {
		missed := 1 - float64(in.Checkins.Completed)/float64(in.Checkins.Expected)
		features[FeatureMissedCheckins] = clamp01(missed)
	}

	if in.Telemetry != nil && in.Telemetry.Sessions > 0 {
		abandonRate := float64(in.Telemetry.Abandoned) / float64(in.Telemetry.Sessions)
		features[FeatureGameStress] = clamp01(0.6*abandonRate + 0.4*in.Telemetry.PaceDeviation)
	}

	if rating, ok := in.Questionnaire[QuestionSafety]; ok {
		features[FeatureSafetyLow] = clamp01(1 - rating/10)
	}

	for name, value := range in.Chat {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			continue
		}
		features[name] = clamp01(value)
	}

	return features, nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
