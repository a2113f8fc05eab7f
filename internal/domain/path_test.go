package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChildPathDepth_Root(t *testing.T) {
	path, depth := ChildPathDepth(nil)
	assert.Equal(t, "", path)
	assert.Equal(t, 0, depth)
}

func TestChildPathDepth_Nested(t *testing.T) {
	root := &PlanItem{ID: "ws-1", Path: "", Depth: 0}

	path, depth := ChildPathDepth(root)
	assert.Equal(t, "/ws-1", path)
	assert.Equal(t, 1, depth)

	mid := &PlanItem{ID: "ms-1", Path: path, Depth: depth}
	path, depth = ChildPathDepth(mid)
	assert.Equal(t, "/ws-1/ms-1", path)
	assert.Equal(t, 2, depth)
}

func TestPathSegments(t *testing.T) {
	assert.Empty(t, PathSegments(""))
	assert.Equal(t, []string{"a"}, PathSegments("/a"))
	assert.Equal(t, []string{"a", "b", "c"}, PathSegments("/a/b/c"))
}

func TestPathContainsID(t *testing.T) {
	assert.True(t, PathContainsID("/a/b/c", "b"))
	assert.False(t, PathContainsID("/a/b/c", "d"))
	assert.False(t, PathContainsID("", "a"))
}

func TestPathContainsID_NoSubstringMatch(t *testing.T) {
	// "item-1" is a prefix of "item-12" but not an ancestor.
	assert.False(t, PathContainsID("/item-12/item-3", "item-1"))
	assert.True(t, PathContainsID("/item-12/item-3", "item-12"))
}
