package importer

import (
	"strings"
	"time"

	"github.com/mpoulsen/strata/internal/domain"
)

// statusAliases maps common free-text status spellings (already folded by
// normalizeStatusKey) to canonical values.
var statusAliases = map[string]domain.ItemStatus{
	"done":      domain.StatusCompleted,
	"complete":  domain.StatusCompleted,
	"finished":  domain.StatusCompleted,
	"started":   domain.StatusInProgress,
	"active":    domain.StatusInProgress,
	"ongoing":   domain.StatusInProgress,
	"wip":       domain.StatusInProgress,
	"in_review": domain.StatusInProgress,
	"pending":   domain.StatusNotStarted,
	"todo":      domain.StatusNotStarted,
	"new":       domain.StatusNotStarted,
	"planned":   domain.StatusNotStarted,
	"hold":      domain.StatusOnHold,
	"paused":    domain.StatusOnHold,
	"waiting":   domain.StatusOnHold,
	"deferred":  domain.StatusOnHold,
	"blocker":   domain.StatusBlocked,
	"stuck":     domain.StatusBlocked,
	"cancel":    domain.StatusCancelled,
	"canceled":  domain.StatusCancelled,
	"abandoned": domain.StatusCancelled,
}

// NormalizeStatus maps a free-text status to a canonical ItemStatus. The
// input is lowercased with whitespace and hyphens folded to underscores;
// canonical values pass through, everything else consults the alias table.
// Returns false (field skipped, not an error) when nothing matches.
func NormalizeStatus(raw string) (domain.ItemStatus, bool) {
	key := normalizeStatusKey(raw)
	if key == "" {
		return "", false
	}
	if domain.ValidItemStatuses[key] {
		return domain.ItemStatus(key), true
	}
	if status, ok := statusAliases[key]; ok {
		return status, true
	}
	return "", false
}

func normalizeStatusKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "-", "_")
	key = strings.Join(strings.Fields(key), "_")
	return key
}

// dateLayouts are the fixed patterns tried in order before the generic
// fallbacks: ISO, US slash, US dash.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"01-02-2006",
}

// fallbackLayouts catch the looser spellings real spreadsheets produce.
var fallbackLayouts = []string{
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	time.RFC3339,
}

// ParseDate parses an import date trying the fixed patterns first, then the
// generic fallbacks. Returns false when nothing parses; callers skip the
// field rather than failing the row.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
