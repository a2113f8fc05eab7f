package repository

import (
	"context"

	"github.com/mpoulsen/strata/internal/domain"
)

// TreeFilter narrows project-wide item listings. Zero value means no
// filtering beyond the active check.
type TreeFilter struct {
	Status     *domain.ItemStatus
	ItemTypeID *string
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	// GetScoped resolves an active project within the caller's organization.
	GetScoped(ctx context.Context, id, organizationID string) (*domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListByOrg(ctx context.Context, organizationID string) ([]*domain.Project, error)
}

type ItemTypeRepo interface {
	Create(ctx context.Context, t *domain.ItemType) error
	GetByID(ctx context.Context, id string) (*domain.ItemType, error)
	ListByLevel(ctx context.Context, level int) ([]*domain.ItemType, error)
	List(ctx context.Context) ([]*domain.ItemType, error)
}

type PlanItemRepo interface {
	Create(ctx context.Context, item *domain.PlanItem) error
	// GetByID resolves an active item with its type joined.
	GetByID(ctx context.Context, id string) (*domain.PlanItem, error)
	// GetByIDAnyState resolves an item regardless of is_active, for audit reads.
	GetByIDAnyState(ctx context.Context, id string) (*domain.PlanItem, error)
	ListByProject(ctx context.Context, projectID string, filter TreeFilter) ([]*domain.PlanItem, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.PlanItem, error)
	// FindByName resolves an active item by exact name under one parent
	// (parentID nil matches roots), the find-or-create lookup.
	FindByName(ctx context.Context, projectID string, parentID *string, name string) (*domain.PlanItem, error)
	// MaxSortOrder returns the highest sort order among active siblings of
	// parentID within the project, or 0 when there are none.
	MaxSortOrder(ctx context.Context, projectID string, parentID *string) (int, error)
	Update(ctx context.Context, item *domain.PlanItem) error
	// Deactivate soft-deletes a single row.
	Deactivate(ctx context.Context, id string) error
	// DeactivateByPathPrefix soft-deletes every item whose path equals prefix
	// or extends it, returning the number of rows touched.
	DeactivateByPathPrefix(ctx context.Context, projectID, prefix string) (int64, error)
	// RewritePathPrefix rebases the subtree rooted at oldPrefix onto
	// newPrefix, shifting each row's depth by depthDelta.
	RewritePathPrefix(ctx context.Context, projectID, oldPrefix, newPrefix string, depthDelta int) error
}

type HistoryRepo interface {
	Create(ctx context.Context, h *domain.PlanItemHistory) error
	// ListByItem returns all history for an item, newest first.
	ListByItem(ctx context.Context, planItemID string) ([]*domain.PlanItemHistory, error)
}
