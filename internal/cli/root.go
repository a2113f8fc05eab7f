package cli

import (
	"github.com/spf13/cobra"

	"github.com/mpoulsen/strata/internal/service"
)

// App holds the organization scope and service interfaces used by CLI
// commands. OrgID comes from configuration and is threaded through every
// service call.
type App struct {
	OrgID    string
	Projects service.ProjectService
	Items    service.PlanItemService
	Types    service.ItemTypeService
	Importer service.ImportService

	// IsInteractive reports whether stdin is a terminal; interactive forms
	// and the tree browser refuse to start without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "strata" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "strata",
		Short: "Hierarchical work-breakdown planner",
	}

	root.AddCommand(
		newProjectCmd(app),
		newItemCmd(app),
		newTreeCmd(app),
		newHistoryCmd(app),
		newBulkCmd(app),
		newImportCmd(app),
		newTypesCmd(app),
	)

	return root
}
