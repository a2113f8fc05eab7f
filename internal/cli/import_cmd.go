package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mpoulsen/strata/internal/cli/formatter"
	"github.com/mpoulsen/strata/internal/importer"
)

func newImportCmd(app *App) *cobra.Command {
	var project, typeMapFile string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Reconcile a CSV export into a project's hierarchy",
		Long: "Reconcile a CSV export into a project's hierarchy. Rows are matched\n" +
			"against existing items by name at each level; missing items are created\n" +
			"and row metadata is applied to the deepest item on each row. Re-importing\n" +
			"the same file is a no-op.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			typeByLevel, err := loadTypeMap(ctx, app, typeMapFile)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening CSV file: %w", err)
			}
			defer f.Close()

			summary, err := app.Importer.ImportCSV(ctx, app.OrgID, projectID, f, typeByLevel)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatImportSummary(summary))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project name or ID")
	cmd.Flags().StringVar(&typeMapFile, "type-map", "", "YAML file mapping hierarchy levels to item type ids")
	_ = cmd.MarkFlagRequired("project")

	cmd.AddCommand(newImportTemplateCmd())

	return cmd
}

// loadTypeMap reads a level-to-type mapping from YAML, falling back to the
// type catalog's defaults when no file is given.
func loadTypeMap(ctx context.Context, app *App, path string) (map[int]string, error) {
	if path == "" {
		return app.Types.DefaultLevelMap(ctx)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading type map: %w", err)
	}
	var m map[int]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing type map: %w", err)
	}
	return m, nil
}

func newImportTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Print a sample CSV in the accepted format",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print(importer.CSVTemplate())
			return nil
		},
	}
}
