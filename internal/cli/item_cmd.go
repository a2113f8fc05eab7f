package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mpoulsen/strata/internal/cli/formatter"
	"github.com/mpoulsen/strata/internal/domain"
	"github.com/mpoulsen/strata/internal/service"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage plan items",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemInspectCmd(app),
		newItemUpdateCmd(app),
		newItemRemoveCmd(app),
	)

	return cmd
}

// setIfChanged tags a field only when its flag was given, so the service can
// tell "unset" apart from an explicit zero value.
func setIfChanged[T any](flags *pflag.FlagSet, name string, value T, dest *domain.Field[T]) {
	if flags.Changed(name) {
		*dest = domain.SetField(value)
	}
}

func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date %q: %w", name, value, err)
	}
	return &t, nil
}

func newItemAddCmd(app *App) *cobra.Command {
	var project, parentID, typeRef, name, desc, owner, notes, status, start, target string
	var refs []string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new plan item",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if interactive {
				return runItemAddForm(ctx, app)
			}

			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			typeID, err := resolveTypeID(ctx, app, typeRef)
			if err != nil {
				return err
			}

			in := service.CreateItemInput{
				ProjectID:   projectID,
				ItemTypeID:  typeID,
				Name:        name,
				Description: desc,
				Owner:       owner,
				Notes:       notes,
				Status:      domain.ItemStatus(status),
				References:  refs,
			}
			if cmd.Flags().Changed("parent") {
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
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project name or ID")
	cmd.Flags().StringVar(&parentID, "parent", "", "Parent item ID")
	cmd.Flags().StringVar(&typeRef, "type", "", "Item type (workstream|milestone|activity|task|subtask)")
	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVar(&owner, "owner", "", "Owner")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	cmd.Flags().StringVar(&status, "status", "", "Initial status (defaults to not_started)")
	cmd.Flags().StringVar(&start, "start", "", "Planned start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&target, "target", "", "Target end date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&refs, "ref", nil, "Related item IDs (repeatable)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Collect fields via an interactive form")

	return cmd
}

func newItemInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show item details and direct children",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Items.GetByID(context.Background(), app.OrgID, args[0])
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatItemInspect(res.Item, res.Children))
			return nil
		},
	}
}

func newItemUpdateCmd(app *App) *cobra.Command {
	var name, desc, owner, notes, status, parentID, by string
	var start, target, actualStart, actualEnd string
	var refs []string
	var reroot bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a plan item",
		Long: "Update a plan item. Only flags that are provided change the item;\n" +
			"passing an empty date clears it. Changes are recorded in the item's history.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var changes domain.ItemChanges

			flags := cmd.Flags()
			setIfChanged(flags, "name", name, &changes.Name)
			setIfChanged(flags, "desc", desc, &changes.Description)
			setIfChanged(flags, "owner", owner, &changes.Owner)
			setIfChanged(flags, "notes", notes, &changes.Notes)
			setIfChanged(flags, "status", domain.ItemStatus(status), &changes.Status)
			setIfChanged(flags, "ref", refs, &changes.References)
			if flags.Changed("parent") {
				changes.ParentID = domain.SetField(&parentID)
			}
			if reroot {
				changes.ParentID = domain.SetField[*string](nil)
			}

			dateFlags := []struct {
				flag  string
				value string
				dest  *domain.Field[*time.Time]
			}{
				{"start", start, &changes.StartDate},
				{"target", target, &changes.TargetEndDate},
				{"actual-start", actualStart, &changes.ActualStartDate},
				{"actual-end", actualEnd, &changes.ActualEndDate},
			}
			for _, df := range dateFlags {
				if !flags.Changed(df.flag) {
					continue
				}
				t, err := parseDateFlag(df.flag, df.value)
				if err != nil {
					return err
				}
				*df.dest = domain.SetField(t)
			}

			if flags.Changed("by") {
				changes.ChangedBy = &by
			}

			item, err := app.Items.Update(ctx, app.OrgID, args[0], changes)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s (%s)\n", item.Name, item.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVar(&owner, "owner", "", "Owner")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	cmd.Flags().StringVar(&status, "status", "", "Status (not_started|in_progress|completed|blocked|on_hold|cancelled)")
	cmd.Flags().StringVar(&start, "start", "", "Planned start date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&target, "target", "", "Target end date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&actualStart, "actual-start", "", "Actual start date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&actualEnd, "actual-end", "", "Actual end date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&parentID, "parent", "", "New parent item ID (moves the subtree)")
	cmd.Flags().BoolVar(&reroot, "root", false, "Move the item to the top level")
	cmd.Flags().StringArrayVar(&refs, "ref", nil, "Replace related item IDs (repeatable)")
	cmd.Flags().StringVar(&by, "by", "", "Actor recorded in history entries")

	return cmd
}

func newItemRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Soft-delete an item and its descendants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Items.Delete(context.Background(), app.OrgID, args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed item %s and its descendants\n", args[0])
			return nil
		},
	}
}
