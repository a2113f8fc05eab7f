package domain

import "time"

// PlanItem is one node of a project's work-breakdown tree, persisted as a
// flat row with a materialized path/depth encoding of its ancestry.
type PlanItem struct {
	ID              string
	ProjectID       string
	ParentID        *string // nil for roots
	ItemTypeID      string
	Name            string
	Description     string
	Owner           string
	Notes           string
	Status          ItemStatus
	StartDate       *time.Time
	TargetEndDate   *time.Time
	ActualStartDate *time.Time
	ActualEndDate   *time.Time
	References      []string // cross-links to other plan items, not ownership edges
	SortOrder       int      // ordering key among siblings
	Path            string   // "/<rootID>/.../<parentID>"; empty for roots
	Depth           int      // ancestor count; 0 for roots
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Type is the joined catalog entry, populated on reads.
	Type *ItemType
}

// TypeLevel returns the hierarchy level of the joined item type, or 0 when
// the type has not been loaded.
func (p *PlanItem) TypeLevel() int {
	if p.Type == nil {
		return 0
	}
	return p.Type.Level
}
