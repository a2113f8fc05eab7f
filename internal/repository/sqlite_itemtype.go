package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mpoulsen/strata/internal/db"
	"github.com/mpoulsen/strata/internal/domain"
)

const itemTypeColumns = `id, name, level, created_at`

// SQLiteItemTypeRepo implements ItemTypeRepo over a SQLite handle.
type SQLiteItemTypeRepo struct {
	db db.DBTX
}

// NewSQLiteItemTypeRepo creates an item-type repository bound to the given handle.
func NewSQLiteItemTypeRepo(dbtx db.DBTX) *SQLiteItemTypeRepo {
	return &SQLiteItemTypeRepo{db: dbtx}
}

func (r *SQLiteItemTypeRepo) Create(ctx context.Context, t *domain.ItemType) error {
	query := `INSERT INTO item_types (id, name, level, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, t.ID, t.Name, t.Level, t.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting item type: %w", err)
	}
	return nil
}

func (r *SQLiteItemTypeRepo) GetByID(ctx context.Context, id string) (*domain.ItemType, error) {
	query := `SELECT ` + itemTypeColumns + ` FROM item_types WHERE id = ?`
	var t domain.ItemType
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Level, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("item type: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning item type: %w", err)
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &t, nil
}

func (r *SQLiteItemTypeRepo) ListByLevel(ctx context.Context, level int) ([]*domain.ItemType, error) {
	query := `SELECT ` + itemTypeColumns + ` FROM item_types WHERE level = ? ORDER BY name`
	return r.list(ctx, query, level)
}

func (r *SQLiteItemTypeRepo) List(ctx context.Context) ([]*domain.ItemType, error) {
	query := `SELECT ` + itemTypeColumns + ` FROM item_types ORDER BY level, name`
	return r.list(ctx, query)
}

func (r *SQLiteItemTypeRepo) list(ctx context.Context, query string, args ...any) ([]*domain.ItemType, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing item types: %w", err)
	}
	defer rows.Close()

	var types []*domain.ItemType
	for rows.Next() {
		var t domain.ItemType
		var createdAt string
		if err := rows.Scan(&t.ID, &t.Name, &t.Level, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning item type row: %w", err)
		}
		if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		types = append(types, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item types: %w", err)
	}
	return types, nil
}
