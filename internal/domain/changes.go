package domain

import "time"

// Field wraps one updatable attribute in a partial update. Set distinguishes
// "change this field" from "leave it alone", so a zero Field is a no-op and
// nullable fields can be cleared explicitly.
type Field[T any] struct {
	Set   bool
	Value T
}

// SetField returns a Field carrying the given value.
func SetField[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// ItemChanges enumerates the fields a plan item update may touch. The
// trackable subset (everything except ParentID and References handled
// specially, see DiffChanges) feeds the history recorder.
type ItemChanges struct {
	Name            Field[string]
	Description     Field[string]
	Owner           Field[string]
	Notes           Field[string]
	Status          Field[ItemStatus]
	StartDate       Field[*time.Time]
	TargetEndDate   Field[*time.Time]
	ActualStartDate Field[*time.Time]
	ActualEndDate   Field[*time.Time]

	// ParentID moves the item; nil value re-roots it.
	ParentID Field[*string]
	// References replaces the cross-link set; not history-tracked.
	References Field[[]string]

	// ChangedBy attributes the resulting history entries to an actor. It is
	// not an item field and never diffs.
	ChangedBy *string
}

// Empty reports whether the change set touches nothing.
func (c ItemChanges) Empty() bool {
	return !c.Name.Set && !c.Description.Set && !c.Owner.Set && !c.Notes.Set &&
		!c.Status.Set && !c.StartDate.Set && !c.TargetEndDate.Set &&
		!c.ActualStartDate.Set && !c.ActualEndDate.Set &&
		!c.ParentID.Set && !c.References.Set
}

// Apply writes the set fields onto the item. Parent moves are not applied
// here; path/depth recomputation belongs to the lifecycle service.
func (c ItemChanges) Apply(item *PlanItem) {
	if c.Name.Set {
		item.Name = c.Name.Value
	}
	if c.Description.Set {
		item.Description = c.Description.Value
	}
	if c.Owner.Set {
		item.Owner = c.Owner.Value
	}
	if c.Notes.Set {
		item.Notes = c.Notes.Value
	}
	if c.Status.Set {
		item.Status = c.Status.Value
	}
	if c.StartDate.Set {
		item.StartDate = c.StartDate.Value
	}
	if c.TargetEndDate.Set {
		item.TargetEndDate = c.TargetEndDate.Value
	}
	if c.ActualStartDate.Set {
		item.ActualStartDate = c.ActualStartDate.Value
	}
	if c.ActualEndDate.Set {
		item.ActualEndDate = c.ActualEndDate.Value
	}
	if c.References.Set {
		item.References = NormalizeReferences(c.References.Value, item.ID)
	}
}

// NormalizeReferences deduplicates a reference list, preserving first-seen
// order and dropping empty entries and the item's own id.
func NormalizeReferences(refs []string, selfID string) []string {
	if len(refs) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(refs))
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if r == "" || r == selfID || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
