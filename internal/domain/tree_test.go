package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatItem(id string, parentID *string, sortOrder int) *PlanItem {
	return &PlanItem{ID: id, ParentID: parentID, SortOrder: sortOrder}
}

func TestBuildTree_SiblingOrder(t *testing.T) {
	ws := flatItem("ws", nil, 0)
	b := flatItem("b", &ws.ID, 2)
	a := flatItem("a", &ws.ID, 1)

	forest := BuildTree([]*PlanItem{b, ws, a})
	require.Len(t, forest, 1)
	require.Len(t, forest[0].Children, 2)
	assert.Equal(t, "a", forest[0].Children[0].Item.ID)
	assert.Equal(t, "b", forest[0].Children[1].Item.ID)
}

func TestBuildTree_DeepNesting(t *testing.T) {
	ws := flatItem("ws", nil, 0)
	ms := flatItem("ms", &ws.ID, 0)
	task := flatItem("task", &ms.ID, 0)

	forest := BuildTree([]*PlanItem{task, ms, ws})
	require.Len(t, forest, 1)
	require.Len(t, forest[0].Children, 1)
	require.Len(t, forest[0].Children[0].Children, 1)
	assert.Equal(t, "task", forest[0].Children[0].Children[0].Item.ID)
	assert.Equal(t, 3, CountNodes(forest))
}

func TestBuildTree_OrphanPromotedToRoot(t *testing.T) {
	// Parent filtered out of the listing, e.g. by a status filter. The
	// orphan still shows up rather than vanishing.
	missing := "not-in-list"
	orphan := flatItem("orphan", &missing, 0)
	root := flatItem("root", nil, 0)

	forest := BuildTree([]*PlanItem{orphan, root})
	require.Len(t, forest, 2)
}

func TestBuildTree_Empty(t *testing.T) {
	assert.Empty(t, BuildTree(nil))
	assert.Equal(t, 0, CountNodes(nil))
}
