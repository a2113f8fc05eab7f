package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpoulsen/strata/internal/domain"
	"github.com/mpoulsen/strata/internal/repository"
)

func defaultTypeMap() map[int]string {
	return map[int]string{
		domain.LevelWorkstream: "type-workstream",
		domain.LevelMilestone:  "type-milestone",
		domain.LevelActivity:   "type-activity",
		domain.LevelTask:       "type-task",
		domain.LevelSubtask:    "type-subtask",
	}
}

func setupImportService(t *testing.T) (*serviceFixture, ImportService) {
	t.Helper()
	f := setupItemService(t)
	return f, NewImportService(f.projects, f.svc)
}

func TestImportCSV_CreatesHierarchyWithMetadata(t *testing.T) {
	f, imp := setupImportService(t)
	proj := f.newProject(t, "Imported")
	ctx := context.Background()

	csv := strings.Join([]string{
		"workstream,milestone,status,owner,start_date,target_end_date,notes",
		"Development,,in_progress,Alice,2026-01-01,2026-06-30,Main workstream",
		"Development,Sprint 1,in_progress,Bob,2026-01-15,2026-01-29,First sprint",
	}, "\n")

	summary, err := imp.ImportCSV(ctx, testOrg, proj.ID, strings.NewReader(csv), defaultTypeMap())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalRows)
	assert.Equal(t, 2, summary.ItemsCreated)
	assert.Equal(t, 2, summary.ItemsUpdated)
	assert.Empty(t, summary.Errors)

	// Row 1 metadata landed on the workstream.
	ws, err := f.items.FindByName(ctx, proj.ID, nil, "Development")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, ws.Status)
	assert.Equal(t, "Alice", ws.Owner)
	assert.Equal(t, "Main workstream", ws.Notes)

	// Row 2 created Sprint 1 under Development and applied its metadata to
	// the deepest node only.
	sprint, err := f.items.FindByName(ctx, proj.ID, &ws.ID, "Sprint 1")
	require.NoError(t, err)
	assert.Equal(t, "/"+ws.ID, sprint.Path)
	assert.Equal(t, 1, sprint.Depth)
	assert.Equal(t, "Bob", sprint.Owner)
	require.NotNil(t, sprint.StartDate)
	assert.Equal(t, "2026-01-15", sprint.StartDate.Format("2006-01-02"))
	require.NotNil(t, sprint.TargetEndDate)
	assert.Equal(t, "2026-01-29", sprint.TargetEndDate.Format("2006-01-02"))
}

func TestImportCSV_ReimportIsNoOp(t *testing.T) {
	f, imp := setupImportService(t)
	proj := f.newProject(t, "Idempotent")
	ctx := context.Background()

	csv := strings.Join([]string{
		"workstream,milestone,status,owner",
		"Development,Sprint 1,in_progress,Bob",
	}, "\n")

	first, err := imp.ImportCSV(ctx, testOrg, proj.ID, strings.NewReader(csv), defaultTypeMap())
	require.NoError(t, err)
	assert.Equal(t, 2, first.ItemsCreated)
	assert.Equal(t, 1, first.ItemsUpdated)

	second, err := imp.ImportCSV(ctx, testOrg, proj.ID, strings.NewReader(csv), defaultTypeMap())
	require.NoError(t, err)
	assert.Equal(t, 0, second.ItemsCreated)
	assert.Equal(t, 0, second.ItemsUpdated)
	assert.Empty(t, second.Errors)

	// No duplicate trees and no spurious history.
	tree, err := f.svc.ListTree(ctx, testOrg, proj.ID, repository.TreeFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, tree.Count)

	ws, err := f.items.FindByName(ctx, proj.ID, nil, "Development")
	require.NoError(t, err)
	sprint, err := f.items.FindByName(ctx, proj.ID, &ws.ID, "Sprint 1")
	require.NoError(t, err)
	entries, err := f.history.ListByItem(ctx, sprint.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 2) // status + owner from the first import only
}

func TestImportCSV_RowErrorsDoNotAbort(t *testing.T) {
	f, imp := setupImportService(t)
	proj := f.newProject(t, "Partial")
	ctx := context.Background()

	// Level 2 has no type mapping; rows that need it fail individually.
	typeMap := map[int]string{domain.LevelWorkstream: "type-workstream"}

	csv := strings.Join([]string{
		"workstream,milestone",
		"Development,",
		"Development,Sprint 1",
		"Marketing,",
	}, "\n")

	summary, err := imp.ImportCSV(ctx, testOrg, proj.ID, strings.NewReader(csv), typeMap)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalRows)
	assert.Equal(t, 2, summary.ItemsCreated)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, 3, summary.Errors[0].Row)
	assert.Contains(t, summary.Errors[0].Err, "no item type mapped")

	// The rows around the failure still landed.
	_, err = f.items.FindByName(ctx, proj.ID, nil, "Development")
	assert.NoError(t, err)
	_, err = f.items.FindByName(ctx, proj.ID, nil, "Marketing")
	assert.NoError(t, err)
}

func TestImportCSV_BadHeaderRejectsWholeFile(t *testing.T) {
	_, imp := setupImportService(t)

	_, err := imp.ImportCSV(context.Background(), testOrg, "any", strings.NewReader("status,owner\nx,y\n"), defaultTypeMap())
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Msg, "no hierarchy columns")
}

func TestImportCSV_UnknownProject(t *testing.T) {
	_, imp := setupImportService(t)

	csv := "workstream\nDev\n"
	_, err := imp.ImportCSV(context.Background(), testOrg, "missing", strings.NewReader(csv), defaultTypeMap())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestImportCSV_UnparsableMetadataSkippedNotFatal(t *testing.T) {
	f, imp := setupImportService(t)
	proj := f.newProject(t, "Lax")
	ctx := context.Background()

	csv := strings.Join([]string{
		"workstream,status,start_date,owner",
		"Development,someday,next tuesday,Alice",
	}, "\n")

	summary, err := imp.ImportCSV(ctx, testOrg, proj.ID, strings.NewReader(csv), defaultTypeMap())
	require.NoError(t, err)
	assert.Empty(t, summary.Errors)
	assert.Equal(t, 1, summary.ItemsCreated)

	// The bad status and date cells are skipped; the parsable owner applies.
	ws, err := f.items.FindByName(ctx, proj.ID, nil, "Development")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNotStarted, ws.Status)
	assert.Nil(t, ws.StartDate)
	assert.Equal(t, "Alice", ws.Owner)
}
