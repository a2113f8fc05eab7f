package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpoulsen/strata/internal/cli/formatter"
)

func newHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history ID",
		Short: "Show an item's change history",
		Long: "Show an item's field-level change history, newest first.\n" +
			"History remains available for soft-deleted items.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			entries, err := app.Items.GetHistory(ctx, app.OrgID, args[0])
			if err != nil {
				return err
			}

			// Item name is cosmetic here; a deleted item still renders
			// under its ID.
			name := args[0]
			if res, err := app.Items.GetByID(ctx, app.OrgID, args[0]); err == nil {
				name = res.Item.Name
			}

			fmt.Print(formatter.FormatHistory(name, entries))
			return nil
		},
	}
}
