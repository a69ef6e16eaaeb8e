package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/dentplan/internal/db"
	"github.com/alexanderramin/dentplan/internal/domain"
)

// SQLiteCategoryRepo implements CategoryRepo using a SQLite database.
// Categories are returned in insertion order, which is the catalog order.
type SQLiteCategoryRepo struct {
	db db.DBTX
}

// NewSQLiteCategoryRepo creates a new SQLiteCategoryRepo.
func NewSQLiteCategoryRepo(conn db.DBTX) *SQLiteCategoryRepo {
	return &SQLiteCategoryRepo{db: conn}
}

func (r *SQLiteCategoryRepo) List(ctx context.Context) ([]domain.TreatmentCategory, error) {
	query := `SELECT id, name, base_cost, description FROM categories ORDER BY position, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var out []domain.TreatmentCategory
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return out, nil
}

func (r *SQLiteCategoryRepo) GetByID(ctx context.Context, id string) (*domain.TreatmentCategory, error) {
	query := `SELECT id, name, base_cost, description FROM categories WHERE id = ?`
	c, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return c, nil
}

// Upsert inserts c at the end of the catalog, or updates name, base cost
// and description in place when the id already exists.
func (r *SQLiteCategoryRepo) Upsert(ctx context.Context, c *domain.TreatmentCategory) error {
	now := nowUTC()
	query := `INSERT INTO categories (id, name, base_cost, description, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM categories), ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			base_cost = excluded.base_cost,
			description = excluded.description,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		moneyToString(c.BaseCost),
		c.Description,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upserting category %s: %w", c.ID, err)
	}
	return nil
}

func (r *SQLiteCategoryRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting categories: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (*domain.TreatmentCategory, error) {
	var c domain.TreatmentCategory
	var baseStr string
	if err := row.Scan(&c.ID, &c.Name, &baseStr, &c.Description); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning category: %w", err)
	}
	base, err := parseMoney(baseStr, "base_cost")
	if err != nil {
		return nil, fmt.Errorf("category %s: %w", c.ID, err)
	}
	c.BaseCost = base
	return &c, nil
}
