package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mpoulsen/strata/internal/cli/formatter"
	"github.com/mpoulsen/strata/internal/service"
)

// bulkFile is the YAML shape accepted by --file.
type bulkFile struct {
	Entries []bulkFileEntry `yaml:"entries"`
}

type bulkFileEntry struct {
	ID         string   `yaml:"id"`
	Status     *string  `yaml:"status,omitempty"`
	Notes      *string  `yaml:"notes,omitempty"`
	References []string `yaml:"references,omitempty"`
}

func newBulkCmd(app *App) *cobra.Command {
	var file, status, notes string
	var ids []string

	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Apply partial updates to many items at once",
		Long: "Apply partial updates to many items in one request. Entries come\n" +
			"from a YAML file (--file) or from --id flags combined with --status\n" +
			"and --notes. Failed entries are reported but do not stop the rest.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []service.BulkEntry

			switch {
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("reading bulk file: %w", err)
				}
				var bf bulkFile
				if err := yaml.Unmarshal(data, &bf); err != nil {
					return fmt.Errorf("parsing bulk file: %w", err)
				}
				for _, e := range bf.Entries {
					entries = append(entries, service.BulkEntry{
						ID:         e.ID,
						Status:     e.Status,
						Notes:      e.Notes,
						References: e.References,
					})
				}

			case len(ids) > 0:
				for _, id := range ids {
					entry := service.BulkEntry{ID: id}
					if cmd.Flags().Changed("status") {
						entry.Status = &status
					}
					if cmd.Flags().Changed("notes") {
						entry.Notes = &notes
					}
					entries = append(entries, entry)
				}

			default:
				return fmt.Errorf("provide --file or at least one --id")
			}

			results := app.Items.BulkUpdate(context.Background(), app.OrgID, entries)
			fmt.Print(formatter.FormatBulkResults(results))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML file with an 'entries' list")
	cmd.Flags().StringArrayVar(&ids, "id", nil, "Item ID to update (repeatable)")
	cmd.Flags().StringVar(&status, "status", "", "Status to apply to every --id")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes to apply to every --id")

	return cmd
}
