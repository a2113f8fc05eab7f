package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mpoulsen/strata/internal/db"
	"github.com/mpoulsen/strata/internal/domain"
	"github.com/mpoulsen/strata/internal/repository"
)

type planItemService struct {
	projects repository.ProjectRepo
	types    repository.ItemTypeRepo
	items    repository.PlanItemRepo
	history  repository.HistoryRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewPlanItemService creates the lifecycle service over the given
// repositories. The unit of work backs the two multi-statement operations:
// update-plus-history and delete-plus-cascade.
func NewPlanItemService(
	projects repository.ProjectRepo,
	types repository.ItemTypeRepo,
	items repository.PlanItemRepo,
	history repository.HistoryRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) PlanItemService {
	return &planItemService{
		projects: projects,
		types:    types,
		items:    items,
		history:  history,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planItemService) Create(ctx context.Context, orgID string, in CreateItemInput) (item *domain.PlanItem, err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "plan_item_create", started, err, map[string]any{"project": in.ProjectID})
	}()

	project, err := s.projects.GetScoped(ctx, in.ProjectID, orgID)
	if err != nil {
		return nil, asServiceErr(err, "project "+in.ProjectID)
	}

	itemType, err := s.types.GetByID(ctx, in.ItemTypeID)
	if err != nil {
		return nil, asServiceErr(err, "item type "+in.ItemTypeID)
	}

	var parent *domain.PlanItem
	if in.ParentID != nil {
		parent, err = s.items.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, asServiceErr(err, "parent "+*in.ParentID)
		}
		if parent.ProjectID != project.ID {
			return nil, notFoundf("parent %s in project %s", parent.ID, project.ID)
		}
	}

	path, depth := domain.ChildPathDepth(parent)

	// Sibling order is always derived at write time from the scoped
	// aggregate, never from a process-wide counter.
	maxOrder, err := s.items.MaxSortOrder(ctx, project.ID, in.ParentID)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.StatusNotStarted
	}
	if !domain.ValidItemStatuses[string(status)] {
		return nil, validationf("invalid status %q", status)
	}

	now := time.Now().UTC()
	item = &domain.PlanItem{
		ID:            uuid.New().String(),
		ProjectID:     project.ID,
		ParentID:      in.ParentID,
		ItemTypeID:    itemType.ID,
		Name:          in.Name,
		Description:   in.Description,
		Owner:         in.Owner,
		Notes:         in.Notes,
		Status:        status,
		StartDate:     in.StartDate,
		TargetEndDate: in.TargetEndDate,
		SortOrder:     maxOrder + 1,
		Path:          path,
		Depth:         depth,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
		Type:          itemType,
	}
	item.References = domain.NormalizeReferences(in.References, item.ID)

	// Creation is a single insert; history tracks only post-creation changes.
	if err = s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *planItemService) Update(ctx context.Context, orgID, id string, changes domain.ItemChanges) (updated *domain.PlanItem, err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "plan_item_update", started, err, map[string]any{"item": id})
	}()

	item, err := s.ownedItem(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if changes.Status.Set && !domain.ValidItemStatuses[string(changes.Status.Value)] {
		return nil, validationf("invalid status %q", changes.Status.Value)
	}

	now := time.Now().UTC()
	entries := domain.DiffChanges(item, changes, changes.ChangedBy, now)

	// Parent moves are validated fully before any write.
	var move *subtreeMove
	if changes.ParentID.Set && !sameParent(item.ParentID, changes.ParentID.Value) {
		move, err = s.prepareMove(ctx, item, changes.ParentID.Value)
		if err != nil {
			return nil, err
		}
	}

	changes.Apply(item)
	if move != nil {
		item.ParentID = move.newParentID
		item.Path = move.newPath
		item.Depth = move.newDepth
		item.SortOrder = move.newSortOrder
	}
	item.UpdatedAt = now

	if len(entries) == 0 && move == nil && changes.Empty() {
		return item, nil
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLitePlanItemRepo(tx)
		txHistory := repository.NewSQLiteHistoryRepo(tx)

		if err := txItems.Update(ctx, item); err != nil {
			return err
		}
		if move != nil {
			if err := txItems.RewritePathPrefix(ctx, item.ProjectID, move.oldPrefix, move.newPrefix, move.depthDelta); err != nil {
				return err
			}
		}
		for _, entry := range entries {
			entry.ID = uuid.New().String()
			if err := txHistory.Create(ctx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *planItemService) Delete(ctx context.Context, orgID, id string) (err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "plan_item_delete", started, err, map[string]any{"item": id})
	}()

	item, err := s.ownedItem(ctx, orgID, id)
	if err != nil {
		return err
	}

	// Descendants keep their path/depth; only visibility changes.
	prefix := item.Path + "/" + item.ID
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLitePlanItemRepo(tx)
		if err := txItems.Deactivate(ctx, item.ID); err != nil {
			return err
		}
		_, err := txItems.DeactivateByPathPrefix(ctx, item.ProjectID, prefix)
		return err
	})
	return err
}

func (s *planItemService) GetByID(ctx context.Context, orgID, id string) (*ItemWithChildren, error) {
	item, err := s.ownedItem(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	children, err := s.items.ListChildren(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	return &ItemWithChildren{Item: item, Children: children}, nil
}

func (s *planItemService) GetHistory(ctx context.Context, orgID, id string) ([]*domain.PlanItemHistory, error) {
	// History must stay readable after a soft delete, so the audit lookup
	// resolves the item regardless of is_active.
	item, err := s.items.GetByIDAnyState(ctx, id)
	if err != nil {
		return nil, asServiceErr(err, "plan item "+id)
	}
	if err := s.checkOwnership(ctx, orgID, item); err != nil {
		return nil, err
	}
	return s.history.ListByItem(ctx, item.ID)
}

func (s *planItemService) ListTree(ctx context.Context, orgID, projectID string, filter repository.TreeFilter) (*TreeResult, error) {
	project, err := s.projects.GetScoped(ctx, projectID, orgID)
	if err != nil {
		return nil, asServiceErr(err, "project "+projectID)
	}
	items, err := s.items.ListByProject(ctx, project.ID, filter)
	if err != nil {
		return nil, err
	}
	forest := domain.BuildTree(items)
	return &TreeResult{Forest: forest, Count: len(items)}, nil
}

func (s *planItemService) FindOrCreate(ctx context.Context, orgID string, in CreateItemInput) (*domain.PlanItem, bool, error) {
	existing, err := s.items.FindByName(ctx, in.ProjectID, in.ParentID, in.Name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}
	item, err := s.Create(ctx, orgID, in)
	if err != nil {
		return nil, false, err
	}
	return item, true, nil
}

// ownedItem resolves an active item and verifies the caller's org owns its
// project.
func (s *planItemService) ownedItem(ctx context.Context, orgID, id string) (*domain.PlanItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, asServiceErr(err, "plan item "+id)
	}
	if err := s.checkOwnership(ctx, orgID, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *planItemService) checkOwnership(ctx context.Context, orgID string, item *domain.PlanItem) error {
	project, err := s.projects.GetByID(ctx, item.ProjectID)
	if err != nil {
		return asServiceErr(err, "project "+item.ProjectID)
	}
	if project.OrganizationID != orgID {
		return fmt.Errorf("project %s: %w", project.ID, ErrForbidden)
	}
	return nil
}

// subtreeMove holds the precomputed state for a validated re-parenting.
type subtreeMove struct {
	newParentID  *string
	newPath      string
	newDepth     int
	newSortOrder int
	oldPrefix    string
	newPrefix    string
	depthDelta   int
}

// prepareMove validates a parent change and computes the subtree rewrite.
// The cycle check compares path segments exactly, never substrings: one id
// being a textual prefix of another must not produce a false match.
func (s *planItemService) prepareMove(ctx context.Context, item *domain.PlanItem, newParentID *string) (*subtreeMove, error) {
	var parent *domain.PlanItem
	if newParentID != nil {
		var err error
		parent, err = s.items.GetByID(ctx, *newParentID)
		if err != nil {
			return nil, asServiceErr(err, "parent "+*newParentID)
		}
		if parent.ProjectID != item.ProjectID {
			return nil, notFoundf("parent %s in project %s", parent.ID, item.ProjectID)
		}
		if parent.ID == item.ID || domain.PathContainsID(parent.Path, item.ID) {
			return nil, validationf("cannot move item %s under its own descendant %s", item.ID, parent.ID)
		}
	}

	newPath, newDepth := domain.ChildPathDepth(parent)

	// The moved item joins its new sibling group at the end, keeping sort
	// order unique among siblings.
	maxOrder, err := s.items.MaxSortOrder(ctx, item.ProjectID, newParentID)
	if err != nil {
		return nil, err
	}

	return &subtreeMove{
		newParentID:  newParentID,
		newPath:      newPath,
		newDepth:     newDepth,
		newSortOrder: maxOrder + 1,
		oldPrefix:    item.Path + "/" + item.ID,
		newPrefix:    newPath + "/" + item.ID,
		depthDelta:   newDepth - item.Depth,
	}, nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
