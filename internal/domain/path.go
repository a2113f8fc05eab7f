package domain

import "strings"

// ChildPathDepth derives the path and depth for a child of the given parent.
// A nil parent means the child is a root: empty path, depth zero.
func ChildPathDepth(parent *PlanItem) (string, int) {
	if parent == nil {
		return "", 0
	}
	return parent.Path + "/" + parent.ID, parent.Depth + 1
}

// PathSegments splits a materialized path into its ancestor IDs, root first.
// The empty path yields no segments.
func PathSegments(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(path, "/"), "/")
}

// PathContainsID reports whether id appears as an exact segment of path.
// Substring matching is not safe here: one ID may be a textual prefix of
// another, so ancestry checks must compare whole segments.
func PathContainsID(path, id string) bool {
	for _, seg := range PathSegments(path) {
		if seg == id {
			return true
		}
	}
	return false
}
