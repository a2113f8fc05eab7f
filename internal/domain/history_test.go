package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffChanges_RecordsChangedFields(t *testing.T) {
	now := time.Now().UTC()
	item := &PlanItem{
		ID:     "item-1",
		Name:   "Old name",
		Status: StatusNotStarted,
	}
	by := "alice"

	changes := ItemChanges{
		Name:   SetField("New name"),
		Status: SetField(StatusInProgress),
	}

	entries := DiffChanges(item, changes, &by, now)
	require.Len(t, entries, 2)

	byField := map[string]*PlanItemHistory{}
	for _, e := range entries {
		byField[e.Field] = e
		assert.Equal(t, "item-1", e.PlanItemID)
		require.NotNil(t, e.ChangedBy)
		assert.Equal(t, "alice", *e.ChangedBy)
		assert.Equal(t, now, e.CreatedAt)
	}

	require.Contains(t, byField, FieldName)
	assert.Equal(t, "Old name", *byField[FieldName].OldValue)
	assert.Equal(t, "New name", *byField[FieldName].NewValue)

	require.Contains(t, byField, FieldStatus)
	assert.Equal(t, "not_started", *byField[FieldStatus].OldValue)
	assert.Equal(t, "in_progress", *byField[FieldStatus].NewValue)
}

func TestDiffChanges_SkipsEqualValues(t *testing.T) {
	item := &PlanItem{ID: "item-1", Name: "Same", Owner: "bob"}

	changes := ItemChanges{
		Name:  SetField("Same"),
		Owner: SetField("carol"),
	}

	entries := DiffChanges(item, changes, nil, time.Now())
	require.Len(t, entries, 1)
	assert.Equal(t, FieldOwner, entries[0].Field)
	assert.Nil(t, entries[0].ChangedBy)
}

func TestDiffChanges_EmptyStringBecomesNull(t *testing.T) {
	item := &PlanItem{ID: "item-1", Notes: "old notes"}

	changes := ItemChanges{Notes: SetField("")}

	entries := DiffChanges(item, changes, nil, time.Now())
	require.Len(t, entries, 1)
	assert.Equal(t, "old notes", *entries[0].OldValue)
	assert.Nil(t, entries[0].NewValue)
}

func TestDiffChanges_DateNormalization(t *testing.T) {
	old := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	item := &PlanItem{ID: "item-1", StartDate: &old}

	// Same calendar day at a different clock time is not a change.
	sameDay := time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC)
	entries := DiffChanges(item, ItemChanges{StartDate: SetField(&sameDay)}, nil, time.Now())
	assert.Empty(t, entries)

	nextDay := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	entries = DiffChanges(item, ItemChanges{StartDate: SetField(&nextDay)}, nil, time.Now())
	require.Len(t, entries, 1)
	assert.Equal(t, "2026-03-01", *entries[0].OldValue)
	assert.Equal(t, "2026-03-02", *entries[0].NewValue)
}

func TestDiffChanges_ParentMove(t *testing.T) {
	oldParent := "parent-a"
	newParent := "parent-b"
	item := &PlanItem{ID: "item-1", ParentID: &oldParent}

	entries := DiffChanges(item, ItemChanges{ParentID: SetField(&newParent)}, nil, time.Now())
	require.Len(t, entries, 1)
	assert.Equal(t, FieldParentID, entries[0].Field)
	assert.Equal(t, "parent-a", *entries[0].OldValue)
	assert.Equal(t, "parent-b", *entries[0].NewValue)
}

func TestDiffChanges_ReferencesNotTracked(t *testing.T) {
	item := &PlanItem{ID: "item-1"}
	entries := DiffChanges(item, ItemChanges{References: SetField([]string{"x"})}, nil, time.Now())
	assert.Empty(t, entries)
}
