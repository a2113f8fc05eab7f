package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mpoulsen/strata/internal/domain"
	"github.com/mpoulsen/strata/internal/importer"
	"github.com/mpoulsen/strata/internal/repository"
)

type importService struct {
	projects repository.ProjectRepo
	items    PlanItemService
	observer UseCaseObserver
}

// NewImportService creates the CSV reconciliation importer on top of the
// lifecycle service, whose find-or-create primitive keeps repeated imports
// idempotent.
func NewImportService(projects repository.ProjectRepo, items PlanItemService, observers ...UseCaseObserver) ImportService {
	return &importService{
		projects: projects,
		items:    items,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportCSV(ctx context.Context, orgID, projectID string, r io.Reader, typeByLevel map[int]string) (summary *ImportSummary, err error) {
	started := time.Now()
	defer func() {
		fields := map[string]any{"project": projectID}
		if summary != nil {
			fields["rows"] = summary.TotalRows
			fields["created"] = summary.ItemsCreated
		}
		observe(ctx, s.observer, "csv_import", started, err, fields)
	}()

	// Header validation is the only whole-file failure; everything after is
	// per-row.
	table, err := importer.ParseTable(r)
	if err != nil {
		return nil, validationf("%v", err)
	}

	project, err := s.projects.GetScoped(ctx, projectID, orgID)
	if err != nil {
		return nil, asServiceErr(err, "project "+projectID)
	}

	summary = &ImportSummary{TotalRows: len(table.Rows)}
	for _, row := range table.Rows {
		created, updated, rowErr := s.importRow(ctx, orgID, project.ID, row, typeByLevel)
		summary.ItemsCreated += created
		summary.ItemsUpdated += updated
		if rowErr != nil {
			summary.Errors = append(summary.Errors, RowError{Row: row.Line, Err: rowErr.Error()})
		}
	}
	return summary, nil
}

// importRow walks the hierarchy cells in level order, resolving or creating
// each named node under the running parent chain, then applies the row's
// metadata to the deepest node touched.
func (s *importService) importRow(ctx context.Context, orgID, projectID string, row importer.Row, typeByLevel map[int]string) (created, updated int, err error) {
	var parentID *string
	var deepest *domain.PlanItem

	for level := domain.LevelWorkstream; level <= domain.LevelSubtask; level++ {
		name, ok := row.Levels[level]
		if !ok || name == "" {
			continue
		}
		typeID, ok := typeByLevel[level]
		if !ok {
			return created, updated, fmt.Errorf("no item type mapped for level %d (%s)", level, domain.LevelNames[level])
		}

		node, wasCreated, err := s.items.FindOrCreate(ctx, orgID, CreateItemInput{
			ProjectID:  projectID,
			ParentID:   parentID,
			ItemTypeID: typeID,
			Name:       name,
		})
		if err != nil {
			return created, updated, fmt.Errorf("level %d (%q): %w", level, name, err)
		}
		if wasCreated {
			created++
		}
		id := node.ID
		parentID = &id
		deepest = node
	}

	if deepest == nil {
		return created, updated, nil
	}

	changes := metadataChanges(row.Meta)
	if changes.Empty() {
		return created, updated, nil
	}
	// A re-import of unchanged metadata is a no-op, not an update: diffing
	// here keeps repeated imports from touching rows or minting history.
	if len(domain.DiffChanges(deepest, changes, nil, time.Now().UTC())) == 0 {
		return created, updated, nil
	}
	if _, err := s.items.Update(ctx, orgID, deepest.ID, changes); err != nil {
		return created, updated, fmt.Errorf("applying metadata to %q: %w", deepest.Name, err)
	}
	return created, updated + 1, nil
}

// metadataChanges converts row metadata into a change set. Unparsable
// status or date values are skipped silently; a bad cell never fails the
// row.
func metadataChanges(meta map[string]string) domain.ItemChanges {
	var changes domain.ItemChanges

	if raw, ok := meta[importer.ColStatus]; ok {
		if status, ok := importer.NormalizeStatus(raw); ok {
			changes.Status = domain.SetField(status)
		}
	}
	if owner, ok := meta[importer.ColOwner]; ok {
		changes.Owner = domain.SetField(owner)
	}
	if raw, ok := meta[importer.ColStartDate]; ok {
		if t, ok := importer.ParseDate(raw); ok {
			changes.StartDate = domain.SetField(&t)
		}
	}
	if raw, ok := meta[importer.ColTargetEndDate]; ok {
		if t, ok := importer.ParseDate(raw); ok {
			changes.TargetEndDate = domain.SetField(&t)
		}
	}
	if notes, ok := meta[importer.ColNotes]; ok {
		changes.Notes = domain.SetField(notes)
	}
	return changes
}
