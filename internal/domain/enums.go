package domain

type ItemStatus string

const (
	StatusNotStarted ItemStatus = "not_started"
	StatusInProgress ItemStatus = "in_progress"
	StatusCompleted  ItemStatus = "completed"
	StatusOnHold     ItemStatus = "on_hold"
	StatusBlocked    ItemStatus = "blocked"
	StatusCancelled  ItemStatus = "cancelled"
)

// ValidItemStatuses is the canonical set of accepted status strings.
var ValidItemStatuses = map[string]bool{
	"not_started": true, "in_progress": true, "completed": true,
	"on_hold": true, "blocked": true, "cancelled": true,
}

// OrderedItemStatuses lists every status in lifecycle order, for pickers.
var OrderedItemStatuses = []ItemStatus{
	StatusNotStarted, StatusInProgress, StatusCompleted,
	StatusBlocked, StatusOnHold, StatusCancelled,
}

// Hierarchy levels, root to leaf. Every item type in the catalog carries
// exactly one of these.
const (
	LevelWorkstream = 1
	LevelMilestone  = 2
	LevelActivity   = 3
	LevelTask       = 4
	LevelSubtask    = 5
)

// LevelNames maps hierarchy levels to their display names.
var LevelNames = map[int]string{
	LevelWorkstream: "workstream",
	LevelMilestone:  "milestone",
	LevelActivity:   "activity",
	LevelTask:       "task",
	LevelSubtask:    "subtask",
}
