package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/dentplan/internal/db"
	"github.com/alexanderramin/dentplan/internal/domain"
)

// SQLitePlanRepo implements PlanRepo using a SQLite database. A plan's line
// items are stored in plan_line_items and always written as a whole, so
// Create and Update should run inside one transaction.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

const planColumns = `id, patient_id, name, start_date, end_date, status, notes,
	total_cost, total_material_cost, created_at, updated_at`

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.TreatmentPlan) error {
	query := `INSERT INTO treatment_plans (` + planColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.PatientID,
		p.Name,
		p.StartDate,
		nullableString(p.EndDate),
		string(p.Status),
		p.Notes,
		moneyToString(p.TotalCost),
		moneyToString(p.TotalMaterialCost),
		formatTimestamp(p.CreatedAt),
		formatTimestamp(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return r.insertLineItems(ctx, p.ID, p.LineItems)
}

// Update rewrites the plan row and replaces every line item.
func (r *SQLitePlanRepo) Update(ctx context.Context, p *domain.TreatmentPlan) error {
	query := `UPDATE treatment_plans SET patient_id = ?, name = ?, start_date = ?, end_date = ?,
		status = ?, notes = ?, total_cost = ?, total_material_cost = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.PatientID,
		p.Name,
		p.StartDate,
		nullableString(p.EndDate),
		string(p.Status),
		p.Notes,
		moneyToString(p.TotalCost),
		moneyToString(p.TotalMaterialCost),
		formatTimestamp(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("plan %s: %w", p.ID, ErrNotFound)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM plan_line_items WHERE plan_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clearing line items: %w", err)
	}
	return r.insertLineItems(ctx, p.ID, p.LineItems)
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.TreatmentPlan, error) {
	query := `SELECT ` + planColumns + ` FROM treatment_plans WHERE id = ?`
	p, err := scanPlan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	items, err := r.listLineItems(ctx, id)
	if err != nil {
		return nil, err
	}
	p.LineItems = items
	return p, nil
}

func (r *SQLitePlanRepo) List(ctx context.Context, filter PlanFilter) ([]*domain.TreatmentPlan, error) {
	var where []string
	var args []any
	if filter.PatientID != "" {
		where = append(where, "patient_id = ?")
		args = append(args, filter.PatientID)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}
	query := `SELECT ` + planColumns + ` FROM treatment_plans`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY start_date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.TreatmentPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return plans, nil
}

// Delete removes the plan; its line items cascade.
func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM treatment_plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLitePlanRepo) insertLineItems(ctx context.Context, planID string, items []domain.CostLineItem) error {
	query := `INSERT INTO plan_line_items (plan_id, position, category_id, category_name, base_cost,
		quantity, material_cost, particulars, total_cost)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, li := range items {
		_, err := r.db.ExecContext(ctx, query,
			planID,
			i,
			li.CategoryID,
			li.CategoryName,
			moneyToString(li.BaseCost),
			li.Quantity,
			moneyToString(li.MaterialCost),
			li.Particulars,
			moneyToString(li.TotalCost),
		)
		if err != nil {
			return fmt.Errorf("inserting line item %d (%s): %w", i, li.CategoryID, err)
		}
	}
	return nil
}

func (r *SQLitePlanRepo) listLineItems(ctx context.Context, planID string) ([]domain.CostLineItem, error) {
	query := `SELECT category_id, category_name, base_cost, quantity, material_cost, particulars, total_cost
		FROM plan_line_items WHERE plan_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing line items: %w", err)
	}
	defer rows.Close()

	var items []domain.CostLineItem
	for rows.Next() {
		var li domain.CostLineItem
		var baseStr, materialStr, totalStr string
		if err := rows.Scan(&li.CategoryID, &li.CategoryName, &baseStr, &li.Quantity,
			&materialStr, &li.Particulars, &totalStr); err != nil {
			return nil, fmt.Errorf("scanning line item: %w", err)
		}
		if li.BaseCost, err = parseMoney(baseStr, "base_cost"); err != nil {
			return nil, err
		}
		if li.MaterialCost, err = parseMoney(materialStr, "material_cost"); err != nil {
			return nil, err
		}
		if li.TotalCost, err = parseMoney(totalStr, "total_cost"); err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating line items: %w", err)
	}
	return items, nil
}

func scanPlan(row rowScanner) (*domain.TreatmentPlan, error) {
	var p domain.TreatmentPlan
	var endDate sql.NullString
	var status, totalStr, materialStr, createdStr, updatedStr string

	err := row.Scan(&p.ID, &p.PatientID, &p.Name, &p.StartDate, &endDate, &status, &p.Notes,
		&totalStr, &materialStr, &createdStr, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}

	p.EndDate = stringOrEmpty(endDate)
	p.Status = domain.PlanStatus(status)
	if p.TotalCost, err = parseMoney(totalStr, "total_cost"); err != nil {
		return nil, fmt.Errorf("plan %s: %w", p.ID, err)
	}
	if p.TotalMaterialCost, err = parseMoney(materialStr, "total_material_cost"); err != nil {
		return nil, fmt.Errorf("plan %s: %w", p.ID, err)
	}
	p.CreatedAt = parseTimestamp(createdStr)
	p.UpdatedAt = parseTimestamp(updatedStr)
	return &p, nil
}
