package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/mpoulsen/strata/internal/domain"
)

// Project options
type ProjectOption func(*domain.Project)

func WithOrganization(orgID string) ProjectOption {
	return func(p *domain.Project) {
		p.OrganizationID = orgID
	}
}

func WithProjectInactive() ProjectOption {
	return func(p *domain.Project) {
		p.IsActive = false
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:             uuid.New().String(),
		OrganizationID: "org-test",
		Name:           name,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PlanItem options
type ItemOption func(*domain.PlanItem)

func WithParent(parent *domain.PlanItem) ItemOption {
	return func(it *domain.PlanItem) {
		it.ParentID = &parent.ID
		it.Path, it.Depth = domain.ChildPathDepth(parent)
	}
}

func WithItemType(typeID string) ItemOption {
	return func(it *domain.PlanItem) {
		it.ItemTypeID = typeID
	}
}

func WithItemStatus(s domain.ItemStatus) ItemOption {
	return func(it *domain.PlanItem) {
		it.Status = s
	}
}

func WithOwner(owner string) ItemOption {
	return func(it *domain.PlanItem) {
		it.Owner = owner
	}
}

func WithSortOrder(n int) ItemOption {
	return func(it *domain.PlanItem) {
		it.SortOrder = n
	}
}

func WithStartDate(d time.Time) ItemOption {
	return func(it *domain.PlanItem) {
		it.StartDate = &d
	}
}

func WithTargetEndDate(d time.Time) ItemOption {
	return func(it *domain.PlanItem) {
		it.TargetEndDate = &d
	}
}

func WithReferences(refs ...string) ItemOption {
	return func(it *domain.PlanItem) {
		it.References = refs
	}
}

func WithItemInactive() ItemOption {
	return func(it *domain.PlanItem) {
		it.IsActive = false
	}
}

// NewTestItem builds a root-level workstream item by default; use WithParent
// and WithItemType to place it elsewhere in the hierarchy.
func NewTestItem(projectID, name string, opts ...ItemOption) *domain.PlanItem {
	now := time.Now().UTC()
	it := &domain.PlanItem{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		ItemTypeID: "type-workstream",
		Name:       name,
		Status:     domain.StatusNotStarted,
		References: []string{},
		SortOrder:  0,
		Path:       "",
		Depth:      0,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}
