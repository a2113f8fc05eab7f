package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveProjectID resolves a project reference to a project UUID. The
// reference can be an exact name (case-insensitive), a full UUID, or a UUID
// prefix. Only projects in the App's organization are considered.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project is required")
	}

	projects, err := app.Projects.List(ctx, app.OrgID)
	if err != nil {
		return "", err
	}

	// 1. Exact name match (case-insensitive)
	for _, p := range projects {
		if strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
	}

	// 2. Exact UUID match
	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	// 3. UUID prefix match
	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project reference %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTypeID resolves an item type reference, accepting either a type id
// such as "type-task" or a bare type name such as "task".
func resolveTypeID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("item type is required")
	}

	types, err := app.Types.List(ctx)
	if err != nil {
		return "", err
	}
	for _, t := range types {
		if t.ID == input || strings.EqualFold(t.Name, input) {
			return t.ID, nil
		}
	}
	return "", fmt.Errorf("item type not found: %q", input)
}
