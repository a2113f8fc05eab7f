package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mpoulsen/strata/internal/cli/formatter"
	"github.com/mpoulsen/strata/internal/domain"
)

type browseKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

var browseKeys = browseKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Toggle: key.NewBinding(key.WithKeys("enter", " ")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

// browseModel is a minimal tree browser: move with j/k or arrows, collapse
// or expand the node under the cursor with enter or space, quit with q.
type browseModel struct {
	forest    []*domain.TreeNode
	collapsed map[string]bool
	rows      []browseRow
	cursor    int
	height    int
}

type browseRow struct {
	node   *domain.TreeNode
	level  int
	isLast bool
}

func newBrowseModel(forest []*domain.TreeNode) *browseModel {
	m := &browseModel{
		forest:    forest,
		collapsed: make(map[string]bool),
		height:    24,
	}
	m.rebuild()
	return m
}

// rebuild recomputes the visible rows, skipping children of collapsed nodes.
func (m *browseModel) rebuild() {
	m.rows = m.rows[:0]
	var walk func(nodes []*domain.TreeNode, level int)
	walk = func(nodes []*domain.TreeNode, level int) {
		for i, n := range nodes {
			m.rows = append(m.rows, browseRow{node: n, level: level, isLast: i == len(nodes)-1})
			if !m.collapsed[n.Item.ID] {
				walk(n.Children, level+1)
			}
		}
	}
	walk(m.forest, 0)

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, browseKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, browseKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, browseKeys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, browseKeys.Toggle):
			row := m.rows[m.cursor]
			if len(row.node.Children) > 0 {
				m.collapsed[row.node.Item.ID] = !m.collapsed[row.node.Item.ID]
				m.rebuild()
			}
		}
	}

	return m, nil
}

func (m *browseModel) View() string {
	items := make([]formatter.TreeItem, 0, len(m.rows))
	for _, row := range m.rows {
		title := row.node.Item.Name
		if m.collapsed[row.node.Item.ID] {
			title += fmt.Sprintf(" (+%d)", domain.CountNodes(row.node.Children))
		}
		detail := ""
		if row.node.Item.Type != nil {
			detail = row.node.Item.Type.Name
		}
		items = append(items, formatter.TreeItem{
			ID:     row.node.Item.ID,
			Title:  title,
			Level:  row.level,
			IsLast: row.isLast,
			Status: row.node.Item.Status,
			Detail: detail,
		})
	}

	lines := strings.Split(strings.TrimRight(formatter.RenderTree(items), "\n"), "\n")
	for i := range lines {
		if i == m.cursor {
			lines[i] = formatter.StyleHeader.Render("> ") + lines[i]
		} else {
			lines[i] = "  " + lines[i]
		}
	}

	// Keep the cursor on screen for tall trees.
	visible := m.height - 2
	if visible > 0 && len(lines) > visible {
		start := m.cursor - visible/2
		if start < 0 {
			start = 0
		}
		if start+visible > len(lines) {
			start = len(lines) - visible
		}
		lines = lines[start : start+visible]
	}

	help := formatter.Dim("j/k move · enter collapse · q quit")
	return strings.Join(lines, "\n") + "\n\n" + help + "\n"
}

func runBrowse(forest []*domain.TreeNode) error {
	p := tea.NewProgram(newBrowseModel(forest))
	_, err := p.Run()
	return err
}
