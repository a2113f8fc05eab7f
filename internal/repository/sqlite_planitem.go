package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mpoulsen/strata/internal/db"
	"github.com/mpoulsen/strata/internal/domain"
)

// planItemColumns is the canonical SELECT column list for plan_items joined
// with the item_types catalog.
const planItemColumns = `i.id, i.project_id, i.parent_id, i.item_type_id,
		i.name, i.description, i.owner, i.notes, i.status,
		i.start_date, i.target_end_date, i.actual_start_date, i.actual_end_date,
		i.refs, i.sort_order, i.path, i.depth, i.is_active, i.created_at, i.updated_at,
		t.name, t.level, t.created_at`

const planItemFrom = ` FROM plan_items i JOIN item_types t ON i.item_type_id = t.id `

// SQLitePlanItemRepo implements PlanItemRepo over a SQLite handle.
type SQLitePlanItemRepo struct {
	db db.DBTX
}

// NewSQLitePlanItemRepo creates a plan-item repository bound to the given
// handle, which may be a *sql.DB or a transaction.
func NewSQLitePlanItemRepo(dbtx db.DBTX) *SQLitePlanItemRepo {
	return &SQLitePlanItemRepo{db: dbtx}
}

func (r *SQLitePlanItemRepo) Create(ctx context.Context, item *domain.PlanItem) error {
	query := `INSERT INTO plan_items (id, project_id, parent_id, item_type_id,
		name, description, owner, notes, status,
		start_date, target_end_date, actual_start_date, actual_end_date,
		refs, sort_order, path, depth, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.ProjectID,
		item.ParentID, // *string: nil becomes SQL NULL
		item.ItemTypeID,
		item.Name,
		item.Description,
		item.Owner,
		item.Notes,
		string(item.Status),
		nullableTimeToString(item.StartDate, dateLayout),
		nullableTimeToString(item.TargetEndDate, dateLayout),
		nullableTimeToString(item.ActualStartDate, dateLayout),
		nullableTimeToString(item.ActualEndDate, dateLayout),
		marshalRefs(item.References),
		item.SortOrder,
		item.Path,
		item.Depth,
		boolToInt(item.IsActive),
		item.CreatedAt.Format(time.RFC3339),
		item.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan item: %w", err)
	}
	return nil
}

func (r *SQLitePlanItemRepo) GetByID(ctx context.Context, id string) (*domain.PlanItem, error) {
	query := `SELECT ` + planItemColumns + planItemFrom + `WHERE i.id = ? AND i.is_active = 1`
	return r.scanItem(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLitePlanItemRepo) GetByIDAnyState(ctx context.Context, id string) (*domain.PlanItem, error) {
	query := `SELECT ` + planItemColumns + planItemFrom + `WHERE i.id = ?`
	return r.scanItem(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLitePlanItemRepo) ListByProject(ctx context.Context, projectID string, filter TreeFilter) ([]*domain.PlanItem, error) {
	query := `SELECT ` + planItemColumns + planItemFrom + `WHERE i.project_id = ? AND i.is_active = 1`
	args := []any{projectID}
	if filter.Status != nil {
		query += ` AND i.status = ?`
		args = append(args, string(*filter.Status))
	}
	if filter.ItemTypeID != nil {
		query += ` AND i.item_type_id = ?`
		args = append(args, *filter.ItemTypeID)
	}
	query += ` ORDER BY i.depth, i.sort_order`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing plan items by project: %w", err)
	}
	defer rows.Close()
	return r.scanItems(rows)
}

func (r *SQLitePlanItemRepo) ListChildren(ctx context.Context, parentID string) ([]*domain.PlanItem, error) {
	query := `SELECT ` + planItemColumns + planItemFrom +
		`WHERE i.parent_id = ? AND i.is_active = 1 ORDER BY i.sort_order`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing child plan items: %w", err)
	}
	defer rows.Close()
	return r.scanItems(rows)
}

func (r *SQLitePlanItemRepo) FindByName(ctx context.Context, projectID string, parentID *string, name string) (*domain.PlanItem, error) {
	query := `SELECT ` + planItemColumns + planItemFrom +
		`WHERE i.project_id = ? AND i.name = ? AND i.is_active = 1`
	args := []any{projectID, name}
	if parentID == nil {
		query += ` AND i.parent_id IS NULL`
	} else {
		query += ` AND i.parent_id = ?`
		args = append(args, *parentID)
	}
	return r.scanItem(r.db.QueryRowContext(ctx, query, args...))
}

func (r *SQLitePlanItemRepo) MaxSortOrder(ctx context.Context, projectID string, parentID *string) (int, error) {
	query := `SELECT COALESCE(MAX(sort_order), 0) FROM plan_items
		WHERE project_id = ? AND is_active = 1`
	args := []any{projectID}
	if parentID == nil {
		query += ` AND parent_id IS NULL`
	} else {
		query += ` AND parent_id = ?`
		args = append(args, *parentID)
	}
	var maxOrder int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&maxOrder); err != nil {
		return 0, fmt.Errorf("computing max sort order: %w", err)
	}
	return maxOrder, nil
}

func (r *SQLitePlanItemRepo) Update(ctx context.Context, item *domain.PlanItem) error {
	query := `UPDATE plan_items SET parent_id = ?, item_type_id = ?,
		name = ?, description = ?, owner = ?, notes = ?, status = ?,
		start_date = ?, target_end_date = ?, actual_start_date = ?, actual_end_date = ?,
		refs = ?, sort_order = ?, path = ?, depth = ?, is_active = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		item.ParentID,
		item.ItemTypeID,
		item.Name,
		item.Description,
		item.Owner,
		item.Notes,
		string(item.Status),
		nullableTimeToString(item.StartDate, dateLayout),
		nullableTimeToString(item.TargetEndDate, dateLayout),
		nullableTimeToString(item.ActualStartDate, dateLayout),
		nullableTimeToString(item.ActualEndDate, dateLayout),
		marshalRefs(item.References),
		item.SortOrder,
		item.Path,
		item.Depth,
		boolToInt(item.IsActive),
		item.UpdatedAt.Format(time.RFC3339),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plan item: %w", err)
	}
	return nil
}

func (r *SQLitePlanItemRepo) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE plan_items SET is_active = 0, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("deactivating plan item: %w", err)
	}
	return nil
}

// DeactivateByPathPrefix marks every descendant under prefix inactive.
// Paths are untouched so the rows still encode true ancestry for audit.
func (r *SQLitePlanItemRepo) DeactivateByPathPrefix(ctx context.Context, projectID, prefix string) (int64, error) {
	query := `UPDATE plan_items SET is_active = 0, updated_at = ?
		WHERE project_id = ? AND is_active = 1 AND (path = ? OR path LIKE ? || '/%')`
	res, err := r.db.ExecContext(ctx, query,
		time.Now().UTC().Format(time.RFC3339), projectID, prefix, prefix)
	if err != nil {
		return 0, fmt.Errorf("cascading soft delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting cascaded rows: %w", err)
	}
	return n, nil
}

// RewritePathPrefix rebases the subtree rooted at oldPrefix onto newPrefix
// and shifts each row's depth by depthDelta, preserving everything below the
// moved node.
func (r *SQLitePlanItemRepo) RewritePathPrefix(ctx context.Context, projectID, oldPrefix, newPrefix string, depthDelta int) error {
	query := `UPDATE plan_items
		SET path = ? || substr(path, ?), depth = depth + ?, updated_at = ?
		WHERE project_id = ? AND (path = ? OR path LIKE ? || '/%')`
	_, err := r.db.ExecContext(ctx, query,
		newPrefix, len(oldPrefix)+1, depthDelta,
		time.Now().UTC().Format(time.RFC3339),
		projectID, oldPrefix, oldPrefix)
	if err != nil {
		return fmt.Errorf("rewriting subtree paths: %w", err)
	}
	return nil
}

func (r *SQLitePlanItemRepo) scanItem(row *sql.Row) (*domain.PlanItem, error) {
	var raw planItemRow
	if err := row.Scan(raw.dest()...); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan item: %w", err)
	}
	return raw.toDomain()
}

func (r *SQLitePlanItemRepo) scanItems(rows *sql.Rows) ([]*domain.PlanItem, error) {
	var items []*domain.PlanItem
	for rows.Next() {
		var raw planItemRow
		if err := rows.Scan(raw.dest()...); err != nil {
			return nil, fmt.Errorf("scanning plan item row: %w", err)
		}
		item, err := raw.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan items: %w", err)
	}
	return items, nil
}

// planItemRow collects raw scan targets before conversion to the domain type.
type planItemRow struct {
	item          domain.PlanItem
	parentID      sql.NullString
	status        string
	startDate     sql.NullString
	targetEnd     sql.NullString
	actualStart   sql.NullString
	actualEnd     sql.NullString
	refs          string
	isActive      int
	createdAt     string
	updatedAt     string
	typeName      string
	typeLevel     int
	typeCreatedAt string
}

func (r *planItemRow) dest() []any {
	return []any{
		&r.item.ID, &r.item.ProjectID, &r.parentID, &r.item.ItemTypeID,
		&r.item.Name, &r.item.Description, &r.item.Owner, &r.item.Notes, &r.status,
		&r.startDate, &r.targetEnd, &r.actualStart, &r.actualEnd,
		&r.refs, &r.item.SortOrder, &r.item.Path, &r.item.Depth, &r.isActive,
		&r.createdAt, &r.updatedAt,
		&r.typeName, &r.typeLevel, &r.typeCreatedAt,
	}
}

func (r *planItemRow) toDomain() (*domain.PlanItem, error) {
	item := r.item
	item.Status = domain.ItemStatus(r.status)
	if r.parentID.Valid {
		item.ParentID = &r.parentID.String
	}
	item.StartDate = parseNullableTime(r.startDate, dateLayout)
	item.TargetEndDate = parseNullableTime(r.targetEnd, dateLayout)
	item.ActualStartDate = parseNullableTime(r.actualStart, dateLayout)
	item.ActualEndDate = parseNullableTime(r.actualEnd, dateLayout)
	item.References = unmarshalRefs(r.refs)
	item.IsActive = intToBool(r.isActive)

	var err error
	if item.CreatedAt, err = time.Parse(time.RFC3339, r.createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if item.UpdatedAt, err = time.Parse(time.RFC3339, r.updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	typeCreated, err := time.Parse(time.RFC3339, r.typeCreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing type created_at: %w", err)
	}
	item.Type = &domain.ItemType{
		ID:        item.ItemTypeID,
		Name:      r.typeName,
		Level:     r.typeLevel,
		CreatedAt: typeCreated,
	}
	return &item, nil
}
