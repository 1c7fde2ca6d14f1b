package signals

import (
	"context"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// journalWindow bounds which entries count toward mood and language features.
const journalWindow = 7 * 24 * time.Hour

type entryAnalysis struct {
	sentiment  float64
	negativity float64
	counted    bool
}

// analyzeJournals scores recent entries concurrently with bounded workers.
// Each entry produces a sentiment score ((positive − negative) hits over word
// count) and a negativity score (weighted negativity-lexicon words and
// concerning phrases). Entries older than the window or without words are
// skipped.
func analyzeJournals(ctx context.Context, entries []JournalEntry, now time.Time) ([]entryAnalysis, error) {
	results := make([]entryAnalysis, len(entries))
	cutoff := now.Add(-journalWindow)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(min(runtime.NumCPU(), len(entries)), 1))

	for i, entry := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if entry.CreatedAt.Before(cutoff) {
				return nil
			}
			results[i] = analyzeEntry(entry.Text)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func analyzeEntry(text string) entryAnalysis {
	lower := strings.ToLower(text)
	words := len(strings.Fields(lower))
	if words == 0 {
		return entryAnalysis{}
	}

	var negative, positive, negativity, concerning int
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			negative++
		}
	}
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			positive++
		}
	}
	for _, w := range negativityWords {
		if strings.Contains(lower, w) {
			negativity++
		}
	}
	for _, p := range concerningPhrases {
		if strings.Contains(lower, p) {
			concerning++
		}
	}

	return entryAnalysis{
		sentiment:  float64(positive-negative) / float64(words),
		negativity: float64(negativity)*0.1 + float64(concerning)*0.5,
		counted:    true,
	}
}

// moodDrop maps average recent sentiment to the mood_drop_7d feature.
// Fewer than two scored entries is not enough evidence for a drop.
func moodDrop(results []entryAnalysis) float64 {
	var total float64
	var counted int
	for _, r := range results {
		if r.counted {
			total += r.sentiment
			counted++
		}
	}
	if counted < 2 {
		return 0
	}

	avg := total / float64(counted)
	switch {
	case avg < -0.05:
		return 0.8
	case avg < 0:
		return 0.4
	default:
		return 0
	}
}

// negativeLanguage maps average entry negativity to the negative_language feature.
func negativeLanguage(results []entryAnalysis) float64 {
	var total float64
	var counted int
	for _, r := range results {
		if r.counted {
			total += r.negativity
			counted++
		}
	}
	if counted == 0 {
		return 0
	}

	avg := total / float64(counted)
	switch {
	case avg > 0.3:
		return 0.9
	case avg > 0.1:
		return 0.6
	default:
		return 0
	}
}
