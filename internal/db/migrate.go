package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Statements are idempotent so the full set is
// re-run on every open.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id              TEXT PRIMARY KEY,
		organization_id TEXT NOT NULL,
		name            TEXT NOT NULL,
		is_active       INTEGER NOT NULL DEFAULT 1,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_org ON projects(organization_id)`,

	`CREATE TABLE IF NOT EXISTS item_types (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		level      INTEGER NOT NULL CHECK(level BETWEEN 1 AND 5),
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_item_types_level ON item_types(level)`,

	`CREATE TABLE IF NOT EXISTS plan_items (
		id                TEXT PRIMARY KEY,
		project_id        TEXT NOT NULL REFERENCES projects(id),
		parent_id         TEXT REFERENCES plan_items(id),
		item_type_id      TEXT NOT NULL REFERENCES item_types(id),
		name              TEXT NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		owner             TEXT NOT NULL DEFAULT '',
		notes             TEXT NOT NULL DEFAULT '',
		status            TEXT NOT NULL DEFAULT 'not_started'
		                  CHECK(status IN ('not_started','in_progress','completed','on_hold','blocked','cancelled')),
		start_date        TEXT,
		target_end_date   TEXT,
		actual_start_date TEXT,
		actual_end_date   TEXT,
		refs              TEXT NOT NULL DEFAULT '[]',
		sort_order        INTEGER NOT NULL DEFAULT 0,
		path              TEXT NOT NULL DEFAULT '',
		depth             INTEGER NOT NULL DEFAULT 0,
		is_active         INTEGER NOT NULL DEFAULT 1,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_plan_items_project ON plan_items(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_plan_items_parent ON plan_items(parent_id)`,
	// Prefix scans drive the soft-delete cascade and subtree rewrites.
	`CREATE INDEX IF NOT EXISTS idx_plan_items_path ON plan_items(project_id, path)`,
	// Find-or-create resolves by exact name under one parent.
	`CREATE INDEX IF NOT EXISTS idx_plan_items_lookup ON plan_items(project_id, parent_id, name)`,

	`CREATE TABLE IF NOT EXISTS plan_item_history (
		id           TEXT PRIMARY KEY,
		plan_item_id TEXT NOT NULL REFERENCES plan_items(id),
		field        TEXT NOT NULL,
		old_value    TEXT,
		new_value    TEXT,
		changed_by   TEXT,
		created_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_history_item ON plan_item_history(plan_item_id, created_at)`,

	// Default catalog entry per hierarchy level. Callers may add their own.
	`INSERT OR IGNORE INTO item_types (id, name, level, created_at) VALUES
		('type-workstream', 'Workstream', 1, strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		('type-milestone',  'Milestone',  2, strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		('type-activity',   'Activity',   3, strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		('type-task',       'Task',       4, strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		('type-subtask',    'Subtask',    5, strftime('%Y-%m-%dT%H:%M:%SZ','now'))`,
}
