package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mpoulsen/strata/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusColor returns the lipgloss style corresponding to an item status.
func StatusColor(status domain.ItemStatus) lipgloss.Style {
	switch status {
	case domain.StatusCompleted:
		return StyleGreen
	case domain.StatusInProgress:
		return StyleYellow
	case domain.StatusBlocked:
		return StyleRed
	case domain.StatusOnHold:
		return StyleBlue
	case domain.StatusCancelled:
		return StyleDim
	default:
		return StyleFg
	}
}

// StatusPill returns a colored status indicator such as "● In Progress".
func StatusPill(status domain.ItemStatus) string {
	switch status {
	case domain.StatusNotStarted:
		return StyleFg.Render("○ Not Started")
	case domain.StatusInProgress:
		return StyleYellow.Render("● In Progress")
	case domain.StatusCompleted:
		return StyleGreen.Render("✔ Completed")
	case domain.StatusBlocked:
		return StyleRed.Render("✖ Blocked")
	case domain.StatusOnHold:
		return StyleBlue.Render("◌ On Hold")
	case domain.StatusCancelled:
		return StyleDim.Render("⊘ Cancelled")
	default:
		return StyleDim.Render(string(status))
	}
}

// LevelBadge returns a purple-styled hierarchy level label such as "Milestone".
func LevelBadge(level int) string {
	name, ok := domain.LevelNames[level]
	if !ok {
		return StyleDim.Render("--")
	}
	label := strings.ToUpper(name[:1]) + name[1:]
	return StylePurple.Render(label)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
