package assessments

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/haven-app/haven/internal/risk"
	"github.com/haven-app/haven/internal/rulesets"
	"github.com/haven-app/haven/internal/signals"
	"github.com/haven-app/haven/pkg/pagination"
	"github.com/haven-app/haven/pkg/query"
	"github.com/haven-app/haven/pkg/repository"
)

const defaultHistoryDays = 30
const maxHistoryDays = 365

const snapshotColumns = `id, user_id, rule_set_id, score, level, reasons,
						 feature_scores, weights, warn_threshold, high_threshold, created_at`

// Options tunes evaluation behavior. Zero values fall back to defaults.
type Options struct {
	MaterialityFloor float64
	HistoryDays      int
}

type repo struct {
	db          *sql.DB
	logger      *slog.Logger
	pagination  pagination.Config
	rules       rulesets.System
	scorer      *risk.Scorer
	historyDays int
}

// New creates an assessment repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
	rules rulesets.System,
	opts Options,
) System {
	days := opts.HistoryDays
	if days < 1 {
		days = defaultHistoryDays
	}

	return &repo{
		db:          db,
		logger:      logger.With("system", "assessments"),
		pagination:  pagination,
		rules:       rules,
		scorer:      risk.NewScorer(opts.MaterialityFloor),
		historyDays: days,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Snapshot], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count snapshots: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSnapshot)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Snapshot, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	snap, err := repository.QueryOne(ctx, r.db, q, args, scanSnapshot)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &snap, nil
}

func (r *repo) Latest(ctx context.Context, userID uuid.UUID) (*Snapshot, error) {
	q := `
		SELECT ` + snapshotColumns + `
		FROM risk_snapshots
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	snap, err := repository.QueryOne(ctx, r.db, q, []any{userID}, scanSnapshot)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &snap, nil
}

func (r *repo) Evaluate(ctx context.Context, cmd EvaluateCommand) (*Evaluation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	features := make(risk.FeatureVector)
	var warnings []string

	if cmd.Signals != nil && !cmd.Signals.Empty() {
		extracted, err := signals.Extract(ctx, *cmd.Signals)
		if err != nil {
			return nil, fmt.Errorf("extract signals: %w", err)
		}
		for name, value := range extracted {
			features[name] = value
		}
	}

	// Explicit features win over extracted ones on key collision.
	if len(cmd.Features) > 0 {
		coerced, warns := risk.Coerce(cmd.Features)
		warnings = append(warnings, warns...)
		for name, value := range coerced {
			features[name] = value
		}
	}

	for _, w := range warnings {
		r.logger.Warn("feature coerced", "user_id", cmd.UserID, "detail", w)
	}

	active, err := r.rules.Active(ctx)
	if err != nil {
		return nil, err
	}

	assessment, err := r.scorer.Score(features, active.Rules())
	if err != nil {
		return nil, err
	}

	eval := &Evaluation{
		Assessment: assessment,
		RuleSetID:  active.ID,
		Warnings:   warnings,
	}

	if !cmd.Persist {
		return eval, nil
	}

	snap, err := r.insert(ctx, cmd.UserID, active.ID, assessment)
	if err != nil {
		return nil, err
	}

	eval.SnapshotID = &snap.ID
	r.logger.Info("snapshot recorded",
		"id", snap.ID,
		"user_id", snap.UserID,
		"score", snap.Score,
		"level", snap.Level,
	)

	return eval, nil
}

func (r *repo) insert(ctx context.Context, userID, ruleSetID uuid.UUID, a *risk.Assessment) (*Snapshot, error) {
	reasonsJSON, err := json.Marshal(a.Reasons)
	if err != nil {
		return nil, fmt.Errorf("marshal reasons: %w", err)
	}
	scoresJSON, err := json.Marshal(a.FeatureScores)
	if err != nil {
		return nil, fmt.Errorf("marshal feature scores: %w", err)
	}
	weightsJSON, err := json.Marshal(a.Weights)
	if err != nil {
		return nil, fmt.Errorf("marshal weights: %w", err)
	}

	q := `
		INSERT INTO risk_snapshots(
			user_id, rule_set_id, score, level, reasons,
			feature_scores, weights, warn_threshold, high_threshold, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + snapshotColumns

	args := []any{
		userID, ruleSetID, a.Score, a.Level, reasonsJSON,
		scoresJSON, weightsJSON, a.Thresholds.Warn, a.Thresholds.High, a.Timestamp,
	}

	snap, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Snapshot, error) {
		return repository.QueryOne(ctx, tx, q, args, scanSnapshot)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &snap, nil
}

func (r *repo) Changes(ctx context.Context, userID uuid.UUID) (*risk.ChangeReport, error) {
	q := `
		SELECT ` + snapshotColumns + `
		FROM risk_snapshots
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 2`

	snaps, err := repository.QueryMany(ctx, r.db, q, []any{userID}, scanSnapshot)
	if err != nil {
		return nil, fmt.Errorf("query recent snapshots: %w", err)
	}

	switch len(snaps) {
	case 0:
		return &risk.ChangeReport{HasPrevious: false}, nil
	case 1:
		return risk.Diff(nil, snaps[0].Assessment())
	default:
		return risk.Diff(snaps[1].Assessment(), snaps[0].Assessment())
	}
}

func (r *repo) History(ctx context.Context, userID uuid.UUID, days int) ([]HistoryPoint, error) {
	if days == 0 {
		days = r.historyDays
	}
	if days < 1 || days > maxHistoryDays {
		return nil, ErrInvalidDays
	}

	q := `
		SELECT ` + snapshotColumns + `
		FROM risk_snapshots
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at ASC`

	since := time.Now().UTC().AddDate(0, 0, -days)

	snaps, err := repository.QueryMany(ctx, r.db, q, []any{userID, since}, scanSnapshot)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}

	points := make([]HistoryPoint, len(snaps))
	for i, s := range snaps {
		points[i] = HistoryPoint{
			Timestamp: s.CreatedAt,
			Score:     s.Score,
			Level:     s.Level,
		}
	}
	return points, nil
}
