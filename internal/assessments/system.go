package assessments

import (
	"context"

	"github.com/google/uuid"

	"github.com/haven-app/haven/internal/risk"
	"github.com/haven-app/haven/pkg/pagination"
)

// System defines the public contract for assessment domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Snapshot], error)

	Find(ctx context.Context, id uuid.UUID) (*Snapshot, error)
	Latest(ctx context.Context, userID uuid.UUID) (*Snapshot, error)
	Evaluate(ctx context.Context, cmd EvaluateCommand) (*Evaluation, error)

	// Changes diffs the user's two most recent snapshots. With one snapshot
	// the diff runs against no predecessor; with none the report is just
	// {has_previous: false}.
	Changes(ctx context.Context, userID uuid.UUID) (*risk.ChangeReport, error)

	// History returns the user's snapshots from the last N days in
	// chronological order, reduced to trend points.
	History(ctx context.Context, userID uuid.UUID, days int) ([]HistoryPoint, error)
}
