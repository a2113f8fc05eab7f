package service

import (
	"context"
	"io"
	"time"

	"github.com/mpoulsen/strata/internal/domain"
	"github.com/mpoulsen/strata/internal/repository"
)

// CreateItemInput carries the fields accepted when adding a plan item. Path,
// depth, and sort order are always derived by the service.
type CreateItemInput struct {
	ProjectID     string
	ParentID      *string
	ItemTypeID    string
	Name          string
	Description   string
	Owner         string
	Notes         string
	Status        domain.ItemStatus // defaults to not_started
	StartDate     *time.Time
	TargetEndDate *time.Time
	References    []string
}

// ItemWithChildren is a single item plus its direct active children ordered
// by sort order.
type ItemWithChildren struct {
	Item     *domain.PlanItem
	Children []*domain.PlanItem
}

// TreeResult is a project's assembled forest plus the item count.
type TreeResult struct {
	Forest []*domain.TreeNode
	Count  int
}

// BulkEntry is one partial update in a bulk request. Nil fields are left
// untouched.
type BulkEntry struct {
	ID         string
	Status     *string // normalized and validated by the service
	Notes      *string
	References []string
}

// BulkResult is the per-item outcome of a bulk update. Bulk never aborts:
// failures are captured here instead of propagating.
type BulkResult struct {
	ID      string
	Success bool
	Error   string
}

// PlanItemService is the lifecycle service for the plan-item tree. Every
// operation resolves the caller's organization scope before touching rows.
type PlanItemService interface {
	Create(ctx context.Context, orgID string, in CreateItemInput) (*domain.PlanItem, error)
	Update(ctx context.Context, orgID, id string, changes domain.ItemChanges) (*domain.PlanItem, error)
	Delete(ctx context.Context, orgID, id string) error
	GetByID(ctx context.Context, orgID, id string) (*ItemWithChildren, error)
	GetHistory(ctx context.Context, orgID, id string) ([]*domain.PlanItemHistory, error)
	ListTree(ctx context.Context, orgID, projectID string, filter repository.TreeFilter) (*TreeResult, error)
	// FindOrCreate resolves an active item by exact name under the given
	// parent, creating it when absent. The bool reports whether a row was
	// created.
	FindOrCreate(ctx context.Context, orgID string, in CreateItemInput) (*domain.PlanItem, bool, error)
	BulkUpdate(ctx context.Context, orgID string, entries []BulkEntry) []BulkResult
}

// RowError records one failed CSV row.
type RowError struct {
	Row int
	Err string
}

// ImportSummary aggregates a CSV reconciliation run.
type ImportSummary struct {
	TotalRows    int
	ItemsCreated int
	ItemsUpdated int
	Errors       []RowError
}

// ImportService reconciles semi-structured CSV input against a project's
// existing tree without duplicating nodes.
type ImportService interface {
	// ImportCSV walks each row's hierarchy columns in level order,
	// resolving or creating nodes, then applies row metadata to the deepest
	// node touched. typeByLevel maps hierarchy levels (1..5) to item type
	// ids and is supplied by the caller.
	ImportCSV(ctx context.Context, orgID, projectID string, r io.Reader, typeByLevel map[int]string) (*ImportSummary, error)
}

type ProjectService interface {
	Create(ctx context.Context, orgID, name string) (*domain.Project, error)
	Get(ctx context.Context, orgID, id string) (*domain.Project, error)
	List(ctx context.Context, orgID string) ([]*domain.Project, error)
}

type ItemTypeService interface {
	List(ctx context.Context) ([]*domain.ItemType, error)
	// DefaultLevelMap returns one type id per hierarchy level from the
	// catalog, for import callers that do not supply their own mapping.
	DefaultLevelMap(ctx context.Context) (map[int]string, error)
}
