package domain

import "sort"

// TreeNode is a plan item with its resolved children, ordered by SortOrder.
type TreeNode struct {
	Item     *PlanItem
	Children []*TreeNode
}

// BuildTree assembles a flat, access-scoped list of active items into a
// forest. Children are grouped by parent id in a single pass, then each
// sibling group is stably sorted by SortOrder, so assembly is linear in the
// input size plus the sort. An item whose parent is absent from the input
// (filtered out by the caller) is promoted to a root rather than dropped.
func BuildTree(items []*PlanItem) []*TreeNode {
	byID := make(map[string]*PlanItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	children := make(map[string][]*PlanItem)
	var roots []*PlanItem
	for _, it := range items {
		if it.ParentID == nil {
			roots = append(roots, it)
			continue
		}
		if _, ok := byID[*it.ParentID]; !ok {
			roots = append(roots, it)
			continue
		}
		children[*it.ParentID] = append(children[*it.ParentID], it)
	}

	sortSiblings(roots)
	for _, group := range children {
		sortSiblings(group)
	}

	var build func(item *PlanItem) *TreeNode
	build = func(item *PlanItem) *TreeNode {
		node := &TreeNode{Item: item}
		for _, child := range children[item.ID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	forest := make([]*TreeNode, 0, len(roots))
	for _, root := range roots {
		forest = append(forest, build(root))
	}
	return forest
}

// CountNodes returns the total number of items in the forest.
func CountNodes(forest []*TreeNode) int {
	n := 0
	for _, node := range forest {
		n += 1 + CountNodes(node.Children)
	}
	return n
}

// sortSiblings orders a sibling group by SortOrder, keeping the original
// sequence for equal keys.
func sortSiblings(group []*PlanItem) {
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].SortOrder < group[j].SortOrder
	})
}
