package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mpoulsen/strata/internal/cli/formatter"
	"github.com/mpoulsen/strata/internal/domain"
	"github.com/mpoulsen/strata/internal/service"
)

// strataHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func strataHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func validateRequired(s string) error {
	if s == "" {
		return errors.New("required")
	}
	return nil
}

// dateInput returns a huh.Input for an optional date field with YYYY-MM-DD validation.
func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2026-09-30").
		Value(value).
		Validate(validateOptionalDate)
}

// runItemAddForm collects a new item interactively and creates it.
func runItemAddForm(ctx context.Context, app *App) error {
	if app.IsInteractive != nil && !app.IsInteractive() {
		return errors.New("interactive mode requires a terminal")
	}

	projects, err := app.Projects.List(ctx, app.OrgID)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		return errors.New("no projects exist; create one with 'strata project add'")
	}
	types, err := app.Types.List(ctx)
	if err != nil {
		return err
	}

	projectOpts := make([]huh.Option[string], 0, len(projects))
	for _, p := range projects {
		projectOpts = append(projectOpts, huh.NewOption(p.Name, p.ID))
	}
	typeOpts := make([]huh.Option[string], 0, len(types))
	for _, t := range types {
		typeOpts = append(typeOpts, huh.NewOption(fmt.Sprintf("%s (level %d)", t.Name, t.Level), t.ID))
	}
	statusOpts := make([]huh.Option[string], 0, len(domain.OrderedItemStatuses))
	for _, s := range domain.OrderedItemStatuses {
		statusOpts = append(statusOpts, huh.NewOption(string(s), string(s)))
	}

	var projectID, typeID, parentID, name, owner, status, start, target string
	status = string(domain.StatusNotStarted)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Project").
				Options(projectOpts...).
				Value(&projectID),
			huh.NewSelect[string]().
				Title("Item Type").
				Options(typeOpts...).
				Value(&typeID),
			huh.NewInput().
				Title("Name").
				Value(&name).
				Validate(validateRequired),
			huh.NewInput().
				Title("Parent Item ID (blank for top level)").
				Value(&parentID),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Owner").
				Value(&owner),
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOpts...).
				Value(&status),
			dateInput("Planned Start (blank for none)", &start),
			dateInput("Target End (blank for none)", &target),
		),
	).WithTheme(strataHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return err
	}

	in := service.CreateItemInput{
		ProjectID:  projectID,
		ItemTypeID: typeID,
		Name:       name,
		Owner:      owner,
		Status:     domain.ItemStatus(status),
	}
	if parentID != "" {
		in.ParentID = &parentID
	}
	if in.StartDate, err = parseDateFlag("start", start); err != nil {
		return err
	}
	if in.TargetEndDate, err = parseDateFlag("target", target); err != nil {
		return err
	}

	item, err := app.Items.Create(ctx, app.OrgID, in)
	if err != nil {
		return err
	}
	fmt.Printf("Created %s %s (%s)\n", item.Type.Name, item.Name, item.ID)
	return nil
}
