package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpoulsen/strata/internal/domain"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.ItemStatus
		ok   bool
	}{
		{"in_progress", domain.StatusInProgress, true},
		{"In Progress", domain.StatusInProgress, true},
		{"IN-PROGRESS", domain.StatusInProgress, true},
		{"  completed  ", domain.StatusCompleted, true},
		{"Done", domain.StatusCompleted, true},
		{"WIP", domain.StatusInProgress, true},
		{"todo", domain.StatusNotStarted, true},
		{"on hold", domain.StatusOnHold, true},
		{"paused", domain.StatusOnHold, true},
		{"stuck", domain.StatusBlocked, true},
		{"canceled", domain.StatusCancelled, true},
		{"", "", false},
		{"gibberish", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeStatus(tt.raw)
		assert.Equal(t, tt.ok, ok, "input %q", tt.raw)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %q", tt.raw)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"2026-06-30", "2026-06-30", true},
		{"06/30/2026", "2026-06-30", true},
		{"06-30-2026", "2026-06-30", true},
		{"2026/06/30", "2026-06-30", true},
		{"Jun 30, 2026", "2026-06-30", true},
		{"30 Jun 2026", "2026-06-30", true},
		{" 2026-06-30 ", "2026-06-30", true},
		{"", "", false},
		{"next tuesday", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseDate(tt.raw)
		assert.Equal(t, tt.ok, ok, "input %q", tt.raw)
		if tt.ok {
			assert.Equal(t, tt.want, got.Format("2006-01-02"), "input %q", tt.raw)
		}
	}
}
