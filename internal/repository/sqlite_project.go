package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mpoulsen/strata/internal/db"
	"github.com/mpoulsen/strata/internal/domain"
)

const projectColumns = `id, organization_id, name, is_active, created_at, updated_at`

// SQLiteProjectRepo implements ProjectRepo over a SQLite handle.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a project repository bound to the given
// handle, which may be a *sql.DB or a transaction.
func NewSQLiteProjectRepo(dbtx db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: dbtx}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (id, organization_id, name, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.OrganizationID,
		p.Name,
		boolToInt(p.IsActive),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetScoped(ctx context.Context, id, organizationID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
		WHERE id = ? AND organization_id = ? AND is_active = 1`
	return r.scanProject(r.db.QueryRowContext(ctx, query, id, organizationID))
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	return r.scanProject(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteProjectRepo) ListByOrg(ctx context.Context, organizationID string) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
		WHERE organization_id = ? AND is_active = 1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProjectRow(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) scanProject(row *sql.Row) (*domain.Project, error) {
	var p domain.Project
	var isActive int
	var createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.OrganizationID, &p.Name, &isActive, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	return populateProject(&p, isActive, createdAt, updatedAt)
}

func scanProjectRow(rows *sql.Rows) (*domain.Project, error) {
	var p domain.Project
	var isActive int
	var createdAt, updatedAt string
	if err := rows.Scan(&p.ID, &p.OrganizationID, &p.Name, &isActive, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scanning project row: %w", err)
	}
	return populateProject(&p, isActive, createdAt, updatedAt)
}

func populateProject(p *domain.Project, isActive int, createdAt, updatedAt string) (*domain.Project, error) {
	p.IsActive = intToBool(isActive)
	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return p, nil
}
