package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mpoulsen/strata/internal/db"
	"github.com/mpoulsen/strata/internal/domain"
)

const historyColumns = `id, plan_item_id, field, old_value, new_value, changed_by, created_at`

// SQLiteHistoryRepo implements HistoryRepo over a SQLite handle. The table
// is append-only; there is no update or delete path.
type SQLiteHistoryRepo struct {
	db db.DBTX
}

// NewSQLiteHistoryRepo creates a history repository bound to the given handle.
func NewSQLiteHistoryRepo(dbtx db.DBTX) *SQLiteHistoryRepo {
	return &SQLiteHistoryRepo{db: dbtx}
}

func (r *SQLiteHistoryRepo) Create(ctx context.Context, h *domain.PlanItemHistory) error {
	query := `INSERT INTO plan_item_history (` + historyColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		h.ID,
		h.PlanItemID,
		h.Field,
		h.OldValue,
		h.NewValue,
		h.ChangedBy,
		h.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

func (r *SQLiteHistoryRepo) ListByItem(ctx context.Context, planItemID string) ([]*domain.PlanItemHistory, error) {
	query := `SELECT ` + historyColumns + ` FROM plan_item_history
		WHERE plan_item_id = ? ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query, planItemID)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []*domain.PlanItemHistory
	for rows.Next() {
		var h domain.PlanItemHistory
		var oldV, newV, changedBy sql.NullString
		var createdAt string
		if err := rows.Scan(&h.ID, &h.PlanItemID, &h.Field, &oldV, &newV, &changedBy, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if oldV.Valid {
			h.OldValue = &oldV.String
		}
		if newV.Valid {
			h.NewValue = &newV.String
		}
		if changedBy.Valid {
			h.ChangedBy = &changedBy.String
		}
		if h.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		entries = append(entries, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return entries, nil
}
