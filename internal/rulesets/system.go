package rulesets

import (
	"context"

	"github.com/google/uuid"

	"github.com/haven-app/haven/pkg/pagination"
)

// System defines the public contract for rule-set domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[RuleSet], error)

	Find(ctx context.Context, id uuid.UUID) (*RuleSet, error)
	Active(ctx context.Context) (*RuleSet, error)
	Create(ctx context.Context, cmd CreateCommand) (*RuleSet, error)
	Activate(ctx context.Context, id uuid.UUID) (*RuleSet, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*RuleSet, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Seed loads a rule-set file and activates it when no active rule set
	// exists yet. An empty path is a no-op.
	Seed(ctx context.Context, path string) error
}
