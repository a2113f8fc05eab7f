package service

import (
	"context"
	"time"

	"github.com/mpoulsen/strata/internal/domain"
)

// BulkUpdate applies each entry independently through Update. Per-item
// failures are captured as data and the batch always runs to completion;
// nothing here aborts early.
func (s *planItemService) BulkUpdate(ctx context.Context, orgID string, entries []BulkEntry) []BulkResult {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "plan_item_bulk_update", started, nil, map[string]any{"entries": len(entries)})
	}()

	results := make([]BulkResult, 0, len(entries))
	for _, entry := range entries {
		var changes domain.ItemChanges
		if entry.Status != nil {
			changes.Status = domain.SetField(domain.ItemStatus(*entry.Status))
		}
		if entry.Notes != nil {
			changes.Notes = domain.SetField(*entry.Notes)
		}
		if entry.References != nil {
			changes.References = domain.SetField(entry.References)
		}

		if _, err := s.Update(ctx, orgID, entry.ID, changes); err != nil {
			results = append(results, BulkResult{ID: entry.ID, Error: err.Error()})
			continue
		}
		results = append(results, BulkResult{ID: entry.ID, Success: true})
	}
	return results
}
