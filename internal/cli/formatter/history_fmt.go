package formatter

import (
	"github.com/mpoulsen/strata/internal/domain"
)

// FormatHistory renders an item's audit trail newest-first.
func FormatHistory(itemName string, entries []*domain.PlanItemHistory) string {
	if len(entries) == 0 {
		return RenderBox("History", Dim("No recorded changes."))
	}

	headers := []string{"WHEN", "FIELD", "FROM", "TO", "BY"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			HumanTimestamp(e.CreatedAt),
			StyleFg.Render(e.Field),
			historyValue(e.OldValue),
			historyValue(e.NewValue),
			historyActor(e.ChangedBy),
		})
	}

	return RenderBox("History: "+itemName, RenderTable(headers, rows))
}

func historyValue(v *string) string {
	if v == nil || *v == "" {
		return Dim("(empty)")
	}
	return StyleFg.Render(*v)
}

func historyActor(by *string) string {
	if by == nil || *by == "" {
		return Dim("--")
	}
	return StylePurple.Render(*by)
}
