package domain

import "time"

// ItemType is a catalog entry binding a plan item to a hierarchy level
// (1= workstream .. 5 = subtask).
type ItemType struct {
	ID        string
	Name      string
	Level     int
	CreatedAt time.Time
}

// LevelName returns the display name for the type's level.
func (t *ItemType) LevelName() string {
	if name, ok := LevelNames[t.Level]; ok {
		return name
	}
	return "unknown"
}
