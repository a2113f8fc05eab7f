package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mpoulsen/strata/internal/domain"
)

// TreeItem represents a single row in a tree display.
type TreeItem struct {
	ID     string
	Title  string
	Level  int // indentation depth relative to the rendered roots
	IsLast bool
	Status domain.ItemStatus
	Detail string // right-aligned badge, usually the item type name
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// FlattenForest converts an assembled forest into display order, one TreeItem
// per node, depth-first with siblings in sort order.
func FlattenForest(forest []*domain.TreeNode) []TreeItem {
	var items []TreeItem
	var walk func(nodes []*domain.TreeNode, level int)
	walk = func(nodes []*domain.TreeNode, level int) {
		for i, n := range nodes {
			detail := ""
			if n.Item.Type != nil {
				detail = n.Item.Type.Name
			}
			items = append(items, TreeItem{
				ID:     n.Item.ID,
				Title:  n.Item.Name,
				Level:  level,
				IsLast: i == len(nodes)-1,
				Status: n.Item.Status,
				Detail: detail,
			})
			walk(n.Children, level+1)
		}
	}
	walk(forest, 0)
	return items
}

// RenderTree renders TreeItems as an indented tree using box-drawing
// connectors. Completed items get a green ✔ prefix and dimmed title,
// in-progress items an amber ▶ prefix, blocked items a red ✖ prefix.
// Detail badges are right-aligned past the widest row.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			for i := 1; i < item.Level; i++ {
				prefix += treePipe
			}
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		statusPrefix := ""

		switch item.Status {
		case domain.StatusCompleted:
			statusPrefix = StyleGreen.Render("✔ ")
			title = Dim(title)
		case domain.StatusInProgress:
			statusPrefix = StyleYellowBold.Render("▶ ")
			title = StyleYellowBold.Render(title)
		case domain.StatusBlocked:
			statusPrefix = StyleRed.Render("✖ ")
		case domain.StatusCancelled:
			title = Dim(title)
		}

		content := prefix + statusPrefix + title
		lines[idx].content = content

		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render("[ " + item.Detail + " ]")
		}

		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := maxContentWidth - lipgloss.Width(li.content)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}

	return b.String()
}
