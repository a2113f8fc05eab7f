package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpoulsen/strata/internal/repository"
	"github.com/mpoulsen/strata/internal/testutil"
)

func TestProjectService_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewProjectService(repository.NewSQLiteProjectRepo(database))
	ctx := context.Background()

	p, err := svc.Create(ctx, "org-a", "Rollout")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "org-a", p.OrganizationID)
	assert.True(t, p.IsActive)

	got, err := svc.Get(ctx, "org-a", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rollout", got.Name)

	// Scoped to the owning organization.
	_, err = svc.Get(ctx, "org-b", p.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProjectService_List(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewProjectService(repository.NewSQLiteProjectRepo(database))
	ctx := context.Background()

	_, err := svc.Create(ctx, "org-a", "One")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "org-b", "Two")
	require.NoError(t, err)

	projects, err := svc.List(ctx, "org-a")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "One", projects[0].Name)
}

func TestItemTypeService_ListAndDefaultLevelMap(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewItemTypeService(repository.NewSQLiteItemTypeRepo(database))
	ctx := context.Background()

	types, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 5)

	m, err := svc.DefaultLevelMap(ctx)
	require.NoError(t, err)
	require.Len(t, m, 5)
	assert.Equal(t, "type-workstream", m[1])
	assert.Equal(t, "type-subtask", m[5])
}
