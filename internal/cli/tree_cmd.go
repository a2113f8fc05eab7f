package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpoulsen/strata/internal/cli/formatter"
	"github.com/mpoulsen/strata/internal/domain"
	"github.com/mpoulsen/strata/internal/repository"
)

func newTreeCmd(app *App) *cobra.Command {
	var statusFlag, typeFlag string

	cmd := &cobra.Command{
		Use:   "tree PROJECT",
		Short: "Render a project's item hierarchy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, filter, err := treeArgs(ctx, app, args[0], statusFlag, typeFlag)
			if err != nil {
				return err
			}

			tree, err := app.Items.ListTree(ctx, app.OrgID, projectID, filter)
			if err != nil {
				return err
			}
			if tree.Count == 0 {
				fmt.Println("No items found.")
				return nil
			}

			fmt.Print(formatter.RenderTree(formatter.FlattenForest(tree.Forest)))
			fmt.Printf("\n%s\n", formatter.Dim(fmt.Sprintf("%d items", tree.Count)))
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFlag, "status", "", "Only items with this status")
	cmd.Flags().StringVar(&typeFlag, "type", "", "Only items of this type")

	cmd.AddCommand(newTreeBrowseCmd(app))

	return cmd
}

func newTreeBrowseCmd(app *App) *cobra.Command {
	var statusFlag, typeFlag string

	cmd := &cobra.Command{
		Use:   "browse PROJECT",
		Short: "Browse a project's hierarchy interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return errors.New("browse requires a terminal")
			}

			ctx := context.Background()
			projectID, filter, err := treeArgs(ctx, app, args[0], statusFlag, typeFlag)
			if err != nil {
				return err
			}
			tree, err := app.Items.ListTree(ctx, app.OrgID, projectID, filter)
			if err != nil {
				return err
			}
			if tree.Count == 0 {
				fmt.Println("No items found.")
				return nil
			}

			return runBrowse(tree.Forest)
		},
	}

	cmd.Flags().StringVar(&statusFlag, "status", "", "Only items with this status")
	cmd.Flags().StringVar(&typeFlag, "type", "", "Only items of this type")

	return cmd
}

func treeArgs(ctx context.Context, app *App, projectRef, statusFlag, typeFlag string) (string, repository.TreeFilter, error) {
	var filter repository.TreeFilter

	projectID, err := resolveProjectID(ctx, app, projectRef)
	if err != nil {
		return "", filter, err
	}

	if statusFlag != "" {
		if !domain.ValidItemStatuses[statusFlag] {
			return "", filter, fmt.Errorf("invalid status %q", statusFlag)
		}
		s := domain.ItemStatus(statusFlag)
		filter.Status = &s
	}
	if typeFlag != "" {
		typeID, err := resolveTypeID(ctx, app, typeFlag)
		if err != nil {
			return "", filter, err
		}
		filter.ItemTypeID = &typeID
	}

	return projectID, filter, nil
}
