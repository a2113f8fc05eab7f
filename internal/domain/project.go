package domain

import "time"

// Project is the scope boundary for plan items. Items never move across
// projects, and every read or mutation resolves the project against the
// caller's organization first.
type Project struct {
	ID             string
	OrganizationID string
	Name           string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
