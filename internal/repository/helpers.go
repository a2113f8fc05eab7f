package repository

import (
	"database/sql"
	"encoding/json"
	"time"
)

// dateLayout is the storage form for plain dates; timestamps use RFC3339.
const dateLayout = "2006-01-02"

// parseNullableTime parses a sql.NullString into a *time.Time using the given
// layout. Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a SQLite-storable value:
// nil pointer becomes SQL NULL.
func nullableTimeToString(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

// marshalRefs encodes a reference list as a JSON array for the refs column.
// An empty list stores as "[]".
func marshalRefs(refs []string) string {
	if len(refs) == 0 {
		return "[]"
	}
	b, err := json.Marshal(refs)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// unmarshalRefs decodes the refs column; malformed content yields nil rather
// than failing the row scan.
func unmarshalRefs(s string) []string {
	if s == "" || s == "[]" {
		return nil
	}
	var refs []string
	if err := json.Unmarshal([]byte(s), &refs); err != nil {
		return nil
	}
	return refs
}
