package rulesets

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/haven-app/haven/pkg/pagination"
	"github.com/haven-app/haven/pkg/query"
	"github.com/haven-app/haven/pkg/repository"
)

const returning = `id, name, version, weights, warn_threshold, high_threshold,
				   description, active, created_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a rule-set repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "rulesets"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[RuleSet], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count rule sets: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRuleSet)
	if err != nil {
		return nil, fmt.Errorf("query rule sets: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*RuleSet, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rs, err := repository.QueryOne(ctx, r.db, q, args, scanRuleSet)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rs, nil
}

func (r *repo) Active(ctx context.Context) (*RuleSet, error) {
	active := true
	q, args := query.
		NewBuilder(projection).
		WhereEquals("Active", &active).
		BuildSingleOrNull()

	rs, err := repository.QueryOne(ctx, r.db, q, args, scanRuleSet)
	if err != nil {
		return nil, repository.MapError(err, ErrNoActive, ErrDuplicate)
	}
	return &rs, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*RuleSet, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	weightsJSON, err := json.Marshal(cmd.Weights)
	if err != nil {
		return nil, fmt.Errorf("marshal weights: %w", err)
	}

	q := `
		INSERT INTO rule_sets(name, version, weights, warn_threshold, high_threshold, description)
		VALUES (
			$1,
			(SELECT COALESCE(MAX(version), 0) + 1 FROM rule_sets WHERE name = $1),
			$2, $3, $4, $5
		)
		RETURNING ` + returning

	args := []any{cmd.Name, weightsJSON, cmd.Thresholds.Warn, cmd.Thresholds.High, cmd.Description}

	rs, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (RuleSet, error) {
		return repository.QueryOne(ctx, tx, q, args, scanRuleSet)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("rule set created", "id", rs.ID, "name", rs.Name, "version", rs.Version)
	return &rs, nil
}

func (r *repo) Activate(ctx context.Context, id uuid.UUID) (*RuleSet, error) {
	activateQ := `
		UPDATE rule_sets
		SET active = TRUE
		WHERE id = $1
		RETURNING ` + returning

	rs, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (RuleSet, error) {
		if _, err := tx.ExecContext(ctx, "UPDATE rule_sets SET active = FALSE WHERE active"); err != nil {
			return RuleSet{}, fmt.Errorf("deactivate current: %w", err)
		}
		return repository.QueryOne(ctx, tx, activateQ, []any{id}, scanRuleSet)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("rule set activated", "id", rs.ID, "name", rs.Name, "version", rs.Version)
	return &rs, nil
}

func (r *repo) Deactivate(ctx context.Context, id uuid.UUID) (*RuleSet, error) {
	q := `
		UPDATE rule_sets
		SET active = FALSE
		WHERE id = $1
		RETURNING ` + returning

	rs, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (RuleSet, error) {
		return repository.QueryOne(ctx, tx, q, []any{id}, scanRuleSet)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("rule set deactivated", "id", rs.ID)
	return &rs, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		var active bool
		row := tx.QueryRowContext(ctx, "SELECT active FROM rule_sets WHERE id = $1", id)
		if err := row.Scan(&active); err != nil {
			return struct{}{}, err
		}
		if active {
			return struct{}{}, ErrActiveDelete
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM rule_sets WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("rule set deleted", "id", id)
	return nil
}

func (r *repo) Seed(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}

	if _, err := r.Active(ctx); err == nil {
		return nil
	} else if !errors.Is(err, ErrNoActive) {
		return err
	}

	cmd, err := LoadFile(path)
	if err != nil {
		return fmt.Errorf("load rule file %s: %w", path, err)
	}

	rs, err := r.Create(ctx, cmd)
	if err != nil {
		// Another instance may have seeded the same version concurrently.
		if errors.Is(err, ErrDuplicate) {
			return nil
		}
		return err
	}

	if _, err := r.Activate(ctx, rs.ID); err != nil {
		return err
	}

	r.logger.Info("rule set seeded", "path", path, "name", rs.Name, "version", rs.Version)
	return nil
}
