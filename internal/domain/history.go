package domain

import "time"

// PlanItemHistory is one field-level change record. Rows are created as a
// side effect of successful updates and never mutated afterwards.
type PlanItemHistory struct {
	ID         string
	PlanItemID string
	Field      string
	OldValue   *string // nil when the field had no value
	NewValue   *string // nil when the field was cleared
	ChangedBy  *string
	CreatedAt  time.Time
}

// History field keys for the trackable attributes.
const (
	FieldName            = "name"
	FieldDescription     = "description"
	FieldOwner           = "owner"
	FieldNotes           = "notes"
	FieldStatus          = "status"
	FieldStartDate       = "startDate"
	FieldTargetEndDate   = "targetEndDate"
	FieldActualStartDate = "actualStartDate"
	FieldActualEndDate   = "actualEndDate"
	FieldParentID        = "parentId"
)

const historyDateLayout = "2006-01-02"

// DiffChanges compares a proposed change set against the current row and
// returns one history record per trackable field whose string-normalized
// value would change. ParentID diffs are recorded too; References are not
// trackable. IDs are left empty for the caller to assign.
func DiffChanges(current *PlanItem, changes ItemChanges, changedBy *string, now time.Time) []*PlanItemHistory {
	var entries []*PlanItemHistory

	add := func(field string, oldV, newV *string) {
		if strPtrEqual(oldV, newV) {
			return
		}
		entries = append(entries, &PlanItemHistory{
			PlanItemID: current.ID,
			Field:      field,
			OldValue:   oldV,
			NewValue:   newV,
			ChangedBy:  changedBy,
			CreatedAt:  now,
		})
	}

	if changes.Name.Set {
		add(FieldName, strValue(current.Name), strValue(changes.Name.Value))
	}
	if changes.Description.Set {
		add(FieldDescription, strValue(current.Description), strValue(changes.Description.Value))
	}
	if changes.Owner.Set {
		add(FieldOwner, strValue(current.Owner), strValue(changes.Owner.Value))
	}
	if changes.Notes.Set {
		add(FieldNotes, strValue(current.Notes), strValue(changes.Notes.Value))
	}
	if changes.Status.Set {
		add(FieldStatus, strValue(string(current.Status)), strValue(string(changes.Status.Value)))
	}
	if changes.StartDate.Set {
		add(FieldStartDate, dateValue(current.StartDate), dateValue(changes.StartDate.Value))
	}
	if changes.TargetEndDate.Set {
		add(FieldTargetEndDate, dateValue(current.TargetEndDate), dateValue(changes.TargetEndDate.Value))
	}
	if changes.ActualStartDate.Set {
		add(FieldActualStartDate, dateValue(current.ActualStartDate), dateValue(changes.ActualStartDate.Value))
	}
	if changes.ActualEndDate.Set {
		add(FieldActualEndDate, dateValue(current.ActualEndDate), dateValue(changes.ActualEndDate.Value))
	}
	if changes.ParentID.Set {
		add(FieldParentID, copyStrPtr(current.ParentID), copyStrPtr(changes.ParentID.Value))
	}

	return entries
}

// strValue normalizes a text field for history storage: empty becomes NULL.
func strValue(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// dateValue normalizes an optional date to its YYYY-MM-DD form.
func dateValue(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(historyDateLayout)
	return &s
}

func copyStrPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
