package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpoulsen/strata/internal/domain"
	"github.com/mpoulsen/strata/internal/testutil"
)

func TestHistoryRepo_CreateAndListNewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	projRepo := NewSQLiteProjectRepo(db)
	itemRepo := NewSQLitePlanItemRepo(db)
	histRepo := NewSQLiteHistoryRepo(db)

	proj := testutil.NewTestProject("History Host")
	require.NoError(t, projRepo.Create(ctx, proj))
	item := testutil.NewTestItem(proj.ID, "Tracked")
	require.NoError(t, itemRepo.Create(ctx, item))

	base := time.Now().UTC().Add(-time.Hour)
	oldName := "Tracked"
	newName := "Renamed"
	by := "alice"

	first := &domain.PlanItemHistory{
		ID:         uuid.New().String(),
		PlanItemID: item.ID,
		Field:      domain.FieldName,
		OldValue:   &oldName,
		NewValue:   &newName,
		ChangedBy:  &by,
		CreatedAt:  base,
	}
	require.NoError(t, histRepo.Create(ctx, first))

	status := "in_progress"
	second := &domain.PlanItemHistory{
		ID:         uuid.New().String(),
		PlanItemID: item.ID,
		Field:      domain.FieldStatus,
		NewValue:   &status,
		CreatedAt:  base.Add(time.Minute),
	}
	require.NoError(t, histRepo.Create(ctx, second))

	entries, err := histRepo.ListByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, domain.FieldStatus, entries[0].Field)
	assert.Equal(t, domain.FieldName, entries[1].Field)

	// Nullable columns round-trip.
	assert.Nil(t, entries[0].OldValue)
	assert.Nil(t, entries[0].ChangedBy)
	require.NotNil(t, entries[1].OldValue)
	assert.Equal(t, "Tracked", *entries[1].OldValue)
	require.NotNil(t, entries[1].ChangedBy)
	assert.Equal(t, "alice", *entries[1].ChangedBy)
}

func TestHistoryRepo_ListByItem_EmptyForUnknownItem(t *testing.T) {
	db := testutil.NewTestDB(t)
	histRepo := NewSQLiteHistoryRepo(db)

	entries, err := histRepo.ListByItem(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
