package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpoulsen/strata/internal/cli/formatter"
)

func newTypesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the item type catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := app.Types.List(context.Background())
			if err != nil {
				return err
			}

			headers := []string{"ID", "NAME", "LEVEL"}
			rows := make([][]string, 0, len(types))
			for _, t := range types {
				rows = append(rows, []string{
					formatter.Dim(t.ID),
					formatter.Bold(t.Name),
					formatter.LevelBadge(t.Level),
				})
			}
			fmt.Print(formatter.RenderBox("Item Types", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
}
