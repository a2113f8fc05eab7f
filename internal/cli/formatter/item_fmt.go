package formatter

import (
	"fmt"
	"strings"

	"github.com/mpoulsen/strata/internal/domain"
)

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "ACTIVE", "CREATED"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		active := StyleGreen.Render("yes")
		if !p.IsActive {
			active = StyleDim.Render("no")
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			active,
			HumanDate(p.CreatedAt),
		})
	}

	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatItemInspect renders an item detail card with its direct children.
func FormatItemInspect(item *domain.PlanItem, children []*domain.PlanItem) string {
	var b strings.Builder

	typeLabel := ""
	if item.Type != nil {
		typeLabel = item.Type.Name
	}
	b.WriteString(fmt.Sprintf("%s  %s\n\n", Bold(item.Name), LevelBadge(item.TypeLevel())))

	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("ID     "), TruncID(item.ID)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("PROJECT"), TruncID(item.ProjectID)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("TYPE   "), StyleFg.Render(typeLabel)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("STATUS "), StatusPill(item.Status)))
	if item.ParentID != nil {
		b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("PARENT "), TruncID(*item.ParentID)))
	}
	b.WriteString(fmt.Sprintf("  %s  %d\n", Dim("DEPTH  "), item.Depth))
	if item.Owner != "" {
		b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("OWNER  "), StyleFg.Render(item.Owner)))
	}
	b.WriteString(fmt.Sprintf("  %s  %s → %s\n", Dim("PLANNED"), DateOrDash(item.StartDate), DateOrDash(item.TargetEndDate)))
	if item.ActualStartDate != nil || item.ActualEndDate != nil {
		b.WriteString(fmt.Sprintf("  %s  %s → %s\n", Dim("ACTUAL "), DateOrDash(item.ActualStartDate), DateOrDash(item.ActualEndDate)))
	}
	if len(item.References) > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("REFS   "), StyleBlue.Render(strings.Join(item.References, ", "))))
	}
	if item.Description != "" {
		b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("DESC   "), StyleFg.Render(item.Description)))
	}
	if item.Notes != "" {
		b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("NOTES  "), StyleFg.Render(item.Notes)))
	}
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("UPDATED"), HumanTimestamp(item.UpdatedAt)))

	if len(children) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Children"))
		b.WriteString("\n")
		headers := []string{"ID", "NAME", "TYPE", "STATUS"}
		rows := make([][]string, 0, len(children))
		for _, c := range children {
			typeName := ""
			if c.Type != nil {
				typeName = c.Type.Name
			}
			rows = append(rows, []string{
				TruncID(c.ID),
				c.Name,
				typeName,
				StatusPill(c.Status),
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	return RenderBox("Plan Item", b.String())
}
