package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpoulsen/strata/internal/domain"
	"github.com/mpoulsen/strata/internal/testutil"
)

func setupPlanItemRepo(t *testing.T) (*SQLitePlanItemRepo, *SQLiteProjectRepo) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewSQLitePlanItemRepo(db), NewSQLiteProjectRepo(db)
}

func TestPlanItemRepo_CreateAndGetByID(t *testing.T) {
	repo, projRepo := setupPlanItemRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Item Host")
	require.NoError(t, projRepo.Create(ctx, proj))

	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	target := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	item := testutil.NewTestItem(proj.ID, "Development",
		testutil.WithOwner("alice"),
		testutil.WithItemStatus(domain.StatusInProgress),
		testutil.WithStartDate(start),
		testutil.WithTargetEndDate(target),
		testutil.WithReferences("other-1", "other-2"),
		testutil.WithSortOrder(3),
	)
	item.Description = "Main engineering workstream"
	item.Notes = "kickoff pending"
	require.NoError(t, repo.Create(ctx, item))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)
	assert.Equal(t, proj.ID, got.ProjectID)
	assert.Nil(t, got.ParentID)
	assert.Equal(t, "Development", got.Name)
	assert.Equal(t, "Main engineering workstream", got.Description)
	assert.Equal(t, "alice", got.Owner)
	assert.Equal(t, "kickoff pending", got.Notes)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, "2026-02-01", got.StartDate.Format("2006-01-02"))
	require.NotNil(t, got.TargetEndDate)
	assert.Equal(t, "2026-06-30", got.TargetEndDate.Format("2006-01-02"))
	assert.Equal(t, []string{"other-1", "other-2"}, got.References)
	assert.Equal(t, 3, got.SortOrder)
	assert.Equal(t, "", got.Path)
	assert.Equal(t, 0, got.Depth)
	assert.True(t, got.IsActive)

	// Type catalog is joined in.
	require.NotNil(t, got.Type)
	assert.Equal(t, "Workstream", got.Type.Name)
	assert.Equal(t, "workstream", got.Type.LevelName())
	assert.Equal(t, domain.LevelWorkstream, got.Type.Level)
}

func TestPlanItemRepo_GetByID_NotFound(t *testing.T) {
	repo, _ := setupPlanItemRepo(t)
	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPlanItemRepo_GetByID_ExcludesInactive(t *testing.T) {
	repo, projRepo := setupPlanItemRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Inactive Host")
	require.NoError(t, projRepo.Create(ctx, proj))

	item := testutil.NewTestItem(proj.ID, "Gone", testutil.WithItemInactive())
	require.NoError(t, repo.Create(ctx, item))

	_, err := repo.GetByID(ctx, item.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	got, err := repo.GetByIDAnyState(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestPlanItemRepo_FindByName(t *testing.T) {
	repo, projRepo := setupPlanItemRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("FindByName")
	require.NoError(t, projRepo.Create(ctx, proj))

	root := testutil.NewTestItem(proj.ID, "Development")
	require.NoError(t, repo.Create(ctx, root))

	child := testutil.NewTestItem(proj.ID, "Sprint 1",
		testutil.WithParent(root),
		testutil.WithItemType("type-milestone"),
	)
	require.NoError(t, repo.Create(ctx, child))

	// Root scope: parentID nil.
	got, err := repo.FindByName(ctx, proj.ID, nil, "Development")
	require.NoError(t, err)
	assert.Equal(t, root.ID, got.ID)

	// Child scope.
	got, err = repo.FindByName(ctx, proj.ID, &root.ID, "Sprint 1")
	require.NoError(t, err)
	assert.Equal(t, child.ID, got.ID)

	// Same name under a different parent does not match.
	_, err = repo.FindByName(ctx, proj.ID, nil, "Sprint 1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPlanItemRepo_MaxSortOrder(t *testing.T) {
	repo, projRepo := setupPlanItemRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("SortOrder")
	require.NoError(t, projRepo.Create(ctx, proj))

	n, err := repo.MaxSortOrder(ctx, proj.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	a := testutil.NewTestItem(proj.ID, "A", testutil.WithSortOrder(1))
	b := testutil.NewTestItem(proj.ID, "B", testutil.WithSortOrder(5))
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	n, err = repo.MaxSortOrder(ctx, proj.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	// Children of A are a separate sibling group.
	n, err = repo.MaxSortOrder(ctx, proj.ID, &a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestPlanItemRepo_ListByProject_Filters(t *testing.T) {
	repo, projRepo := setupPlanItemRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Filters")
	require.NoError(t, projRepo.Create(ctx, proj))

	ws := testutil.NewTestItem(proj.ID, "WS", testutil.WithItemStatus(domain.StatusInProgress))
	require.NoError(t, repo.Create(ctx, ws))
	task := testutil.NewTestItem(proj.ID, "T",
		testutil.WithParent(ws),
		testutil.WithItemType("type-task"),
	)
	require.NoError(t, repo.Create(ctx, task))
	gone := testutil.NewTestItem(proj.ID, "Gone", testutil.WithItemInactive())
	require.NoError(t, repo.Create(ctx, gone))

	all, err := repo.ListByProject(ctx, proj.ID, TreeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	status := domain.StatusInProgress
	filtered, err := repo.ListByProject(ctx, proj.ID, TreeFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, ws.ID, filtered[0].ID)

	typeID := "type-task"
	filtered, err = repo.ListByProject(ctx, proj.ID, TreeFilter{ItemTypeID: &typeID})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, task.ID, filtered[0].ID)
}

func TestPlanItemRepo_DeactivateByPathPrefix(t *testing.T) {
	repo, projRepo := setupPlanItemRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Cascade")
	require.NoError(t, projRepo.Create(ctx, proj))

	ws := testutil.NewTestItem(proj.ID, "WS")
	require.NoError(t, repo.Create(ctx, ws))
	ms := testutil.NewTestItem(proj.ID, "MS",
		testutil.WithParent(ws), testutil.WithItemType("type-milestone"))
	require.NoError(t, repo.Create(ctx, ms))
	task := testutil.NewTestItem(proj.ID, "Task",
		testutil.WithParent(ms), testutil.WithItemType("type-task"))
	require.NoError(t, repo.Create(ctx, task))

	sibling := testutil.NewTestItem(proj.ID, "Sibling")
	require.NoError(t, repo.Create(ctx, sibling))

	// Deactivate the subtree below (and including descendants of) WS.
	n, err := repo.DeactivateByPathPrefix(ctx, proj.ID, "/"+ws.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = repo.GetByID(ctx, ms.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = repo.GetByID(ctx, task.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	// The root of the cascade and unrelated siblings are untouched here.
	_, err = repo.GetByID(ctx, ws.ID)
	assert.NoError(t, err)
	_, err = repo.GetByID(ctx, sibling.ID)
	assert.NoError(t, err)

	// Paths survive deactivation for audit reads.
	got, err := repo.GetByIDAnyState(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "/"+ws.ID+"/"+ms.ID, got.Path)
}

func TestPlanItemRepo_RewritePathPrefix(t *testing.T) {
	repo, projRepo := setupPlanItemRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Rebase")
	require.NoError(t, projRepo.Create(ctx, proj))

	src := testutil.NewTestItem(proj.ID, "Source WS")
	dst := testutil.NewTestItem(proj.ID, "Dest WS")
	require.NoError(t, repo.Create(ctx, src))
	require.NoError(t, repo.Create(ctx, dst))

	ms := testutil.NewTestItem(proj.ID, "MS",
		testutil.WithParent(src), testutil.WithItemType("type-milestone"))
	require.NoError(t, repo.Create(ctx, ms))
	task := testutil.NewTestItem(proj.ID, "Task",
		testutil.WithParent(ms), testutil.WithItemType("type-task"))
	require.NoError(t, repo.Create(ctx, task))

	// Rebase ms's subtree as if ms moved under dst.
	oldPrefix := "/" + src.ID + "/" + ms.ID
	newPrefix := "/" + dst.ID + "/" + ms.ID
	require.NoError(t, repo.RewritePathPrefix(ctx, proj.ID, oldPrefix, newPrefix, 0))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, newPrefix, got.Path)
	assert.Equal(t, 2, got.Depth)
}

func TestPlanItemRepo_Update(t *testing.T) {
	repo, projRepo := setupPlanItemRepo(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Update")
	require.NoError(t, projRepo.Create(ctx, proj))

	item := testutil.NewTestItem(proj.ID, "Before")
	require.NoError(t, repo.Create(ctx, item))

	item.Name = "After"
	item.Status = domain.StatusCompleted
	end := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	item.ActualEndDate = &end
	item.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, item))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	require.NotNil(t, got.ActualEndDate)
	assert.Equal(t, "2026-04-01", got.ActualEndDate.Format("2006-01-02"))
}
