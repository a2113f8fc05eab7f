package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpoulsen/strata/internal/domain"
)

func TestParseTable_HeaderDrivenColumns(t *testing.T) {
	// Columns in scrambled order with varied header spellings.
	input := strings.Join([]string{
		"Status,Milestone,workstream,Target End Date,owner",
		"in_progress,Sprint 1,Development,2026-06-30,Bob",
	}, "\n")

	table, err := ParseTable(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, table.HierarchyLevels)
	require.Len(t, table.Rows, 1)

	row := table.Rows[0]
	assert.Equal(t, 2, row.Line)
	assert.Equal(t, "Development", row.Levels[domain.LevelWorkstream])
	assert.Equal(t, "Sprint 1", row.Levels[domain.LevelMilestone])
	assert.Equal(t, "in_progress", row.Meta[ColStatus])
	assert.Equal(t, "Bob", row.Meta[ColOwner])
	assert.Equal(t, "2026-06-30", row.Meta[ColTargetEndDate])
}

func TestParseTable_RejectsMissingHierarchyColumns(t *testing.T) {
	input := "status,owner,notes\nin_progress,Bob,hello\n"

	_, err := ParseTable(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no hierarchy columns")
}

func TestParseTable_EmptyInput(t *testing.T) {
	_, err := ParseTable(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing header")
}

func TestParseTable_SkipsBlankRowsAndUnknownColumns(t *testing.T) {
	input := strings.Join([]string{
		"workstream,task,priority,notes",
		"Dev,Build,P1,first",
		",,,",
		"Dev,Ship,,second",
	}, "\n")

	table, err := ParseTable(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	// The unknown "priority" column is ignored.
	assert.NotContains(t, table.Rows[0].Meta, "priority")
	assert.Equal(t, "first", table.Rows[0].Meta[ColNotes])

	// The all-empty row is dropped but still counted in line numbers.
	assert.Equal(t, 2, table.Rows[0].Line)
	assert.Equal(t, 4, table.Rows[1].Line)
}

func TestParseTable_ShortRows(t *testing.T) {
	// Rows may omit trailing cells entirely.
	input := "workstream,milestone,status\nDevelopment\n"

	table, err := ParseTable(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Development", table.Rows[0].Levels[domain.LevelWorkstream])
	assert.Empty(t, table.Rows[0].Levels[domain.LevelMilestone])
}

func TestCSVTemplate_ParsesCleanly(t *testing.T) {
	table, err := ParseTable(strings.NewReader(CSVTemplate()))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, table.HierarchyLevels)
	assert.NotEmpty(t, table.Rows)
}
