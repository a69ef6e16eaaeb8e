package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Money columns are TEXT holding a decimal string so values round-trip
// without float drift.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		base_cost   TEXT NOT NULL DEFAULT '0',
		description TEXT NOT NULL DEFAULT '',
		position    INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_categories_position ON categories(position)`,

	`CREATE TABLE IF NOT EXISTS treatment_plans (
		id                  TEXT PRIMARY KEY,
		patient_id          TEXT NOT NULL DEFAULT '',
		name                TEXT NOT NULL DEFAULT '',
		start_date          TEXT NOT NULL,
		end_date            TEXT,
		status              TEXT NOT NULL DEFAULT 'pending'
		                    CHECK(status IN ('pending','in_progress','completed','cancelled')),
		total_cost          TEXT NOT NULL DEFAULT '0',
		total_material_cost TEXT NOT NULL DEFAULT '0',
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plans_patient ON treatment_plans(patient_id)`,
	`CREATE INDEX IF NOT EXISTS idx_plans_status ON treatment_plans(status)`,

	`CREATE TABLE IF NOT EXISTS plan_line_items (
		plan_id       TEXT NOT NULL REFERENCES treatment_plans(id) ON DELETE CASCADE,
		position      INTEGER NOT NULL,
		category_id   TEXT NOT NULL,
		category_name TEXT NOT NULL DEFAULT '',
		base_cost     TEXT NOT NULL DEFAULT '0',
		quantity      INTEGER NOT NULL DEFAULT 1 CHECK(quantity BETWEEN 1 AND 20),
		material_cost TEXT NOT NULL DEFAULT '0',
		particulars   TEXT NOT NULL DEFAULT '',
		total_cost    TEXT NOT NULL DEFAULT '0',
		PRIMARY KEY (plan_id, position),
		UNIQUE (plan_id, category_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_line_items_category ON plan_line_items(category_id)`,

	// Notes were added after the first release.
	`ALTER TABLE treatment_plans ADD COLUMN notes TEXT NOT NULL DEFAULT ''`,
}
