package formatter

import (
	"fmt"
	"strings"

	"github.com/mpoulsen/strata/internal/service"
)

// FormatImportSummary renders the outcome of a CSV reconciliation run.
func FormatImportSummary(s *service.ImportSummary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %d\n", Dim("ROWS   "), s.TotalRows))
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("CREATED"), StyleGreen.Render(fmt.Sprintf("%d", s.ItemsCreated))))
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("UPDATED"), StyleYellow.Render(fmt.Sprintf("%d", s.ItemsUpdated))))

	if len(s.Errors) > 0 {
		b.WriteString(fmt.Sprintf("%s  %s\n\n", Dim("ERRORS "), StyleRed.Render(fmt.Sprintf("%d", len(s.Errors)))))
		headers := []string{"ROW", "ERROR"}
		rows := make([][]string, 0, len(s.Errors))
		for _, e := range s.Errors {
			rows = append(rows, []string{
				StyleRed.Render(fmt.Sprintf("%d", e.Row)),
				StyleFg.Render(e.Err),
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	return RenderBox("Import", b.String())
}

// FormatBulkResults renders per-item outcomes of a bulk update in request order.
func FormatBulkResults(results []service.BulkResult) string {
	headers := []string{"ID", "RESULT"}
	rows := make([][]string, 0, len(results))
	succeeded := 0

	for _, r := range results {
		outcome := StyleGreen.Render("ok")
		if r.Success {
			succeeded++
		} else {
			outcome = StyleRed.Render(r.Error)
		}
		rows = append(rows, []string{TruncID(r.ID), outcome})
	}

	summary := fmt.Sprintf("%d of %d succeeded\n\n", succeeded, len(results))
	return RenderBox("Bulk Update", summary+RenderTable(headers, rows))
}
