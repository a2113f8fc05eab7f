package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Hierarchy column names in level order. At least one must appear in the
// header for a file to be importable.
var hierarchyColumns = []string{"workstream", "milestone", "activity", "task", "subtask"}

// Metadata columns applied to the deepest node of each row.
const (
	ColStatus        = "status"
	ColOwner         = "owner"
	ColStartDate     = "start_date"
	ColTargetEndDate = "target_end_date"
	ColNotes         = "notes"
)

// Row is one parsed CSV record: trimmed hierarchy names indexed by level
// (1..5, empty string for blank cells) plus raw metadata values.
type Row struct {
	// Line is the 1-based line number in the source file, header included.
	Line   int
	Levels map[int]string
	Meta   map[string]string
}

// Table is a parsed import file.
type Table struct {
	Rows []Row
	// HierarchyLevels lists which levels the header actually bound, ascending.
	HierarchyLevels []int
}

// ParseTable reads comma-separated content with a header row. Column
// recognition is header-driven and order-independent; unknown columns are
// ignored. A header without any hierarchy column rejects the whole file.
func ParseTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows may omit trailing cells
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	levelByCol := make(map[int]int)   // column index -> hierarchy level
	metaByCol := make(map[int]string) // column index -> metadata key
	for idx, name := range header {
		key := normalizeHeader(name)
		if level := hierarchyLevel(key); level > 0 {
			levelByCol[idx] = level
			continue
		}
		switch key {
		case ColStatus, ColOwner, ColStartDate, ColTargetEndDate, ColNotes:
			metaByCol[idx] = key
		}
	}

	if len(levelByCol) == 0 {
		return nil, fmt.Errorf("header defines no hierarchy columns (expected at least one of %s)",
			strings.Join(hierarchyColumns, ", "))
	}

	table := &Table{}
	seen := make(map[int]bool)
	for _, level := range levelByCol {
		if !seen[level] {
			seen[level] = true
			table.HierarchyLevels = append(table.HierarchyLevels, level)
		}
	}
	sort.Ints(table.HierarchyLevels)

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := Row{
			Line:   line,
			Levels: make(map[int]string),
			Meta:   make(map[string]string),
		}
		empty := true
		for idx, cell := range record {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			empty = false
			if level, ok := levelByCol[idx]; ok {
				row.Levels[level] = cell
			} else if key, ok := metaByCol[idx]; ok {
				row.Meta[key] = cell
			}
		}
		if empty {
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// normalizeHeader lowercases a header cell and folds spaces and hyphens to
// underscores, so "Target End Date" binds to target_end_date.
func normalizeHeader(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	return key
}

func hierarchyLevel(key string) int {
	for i, col := range hierarchyColumns {
		if key == col {
			return i + 1
		}
	}
	return 0
}
