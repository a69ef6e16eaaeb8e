// Package sheet moves plans and categories in and out of .xlsx workbooks.
package sheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	PlanSheet    = "Plan"
	DetailsSheet = "Details"
)

var (
	planHeader     = []interface{}{"category_id", "category", "base_cost", "quantity", "material_cost", "particulars", "total_cost"}
	categoryHeader = []interface{}{"id", "name", "base_cost", "description"}
)

// WritePlan writes a cost sheet for p: one row per line item followed by a
// totals row, plus a details sheet with the scheduling fields.
func WritePlan(w io.Writer, p *domain.TreatmentPlan) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), PlanSheet); err != nil {
		return fmt.Errorf("naming plan sheet: %w", err)
	}
	if err := f.SetSheetRow(PlanSheet, "A1", &planHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := 2
	for _, li := range p.LineItems {
		excelRow := []interface{}{
			li.CategoryID,
			li.CategoryName,
			money(li.BaseCost),
			li.Quantity,
			money(li.MaterialCost),
			li.Particulars,
			money(li.TotalCost),
		}
		if err := setRow(f, PlanSheet, row, excelRow); err != nil {
			return err
		}
		row++
	}

	totals := []interface{}{"", "TOTAL", "", "", money(p.TotalMaterialCost), "", money(p.TotalCost)}
	if err := setRow(f, PlanSheet, row+1, totals); err != nil {
		return err
	}

	if _, err := f.NewSheet(DetailsSheet); err != nil {
		return fmt.Errorf("adding details sheet: %w", err)
	}
	details := [][]interface{}{
		{"id", p.ID},
		{"name", p.DisplayName()},
		{"patient_id", p.PatientID},
		{"status", string(p.Status)},
		{"start_date", p.StartDate},
		{"end_date", p.EndDate},
		{"notes", p.Notes},
	}
	for i, d := range details {
		if err := setRow(f, DetailsSheet, i+1, d); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// WriteCategories writes cats in the layout ReadCategories accepts, so an
// export can be edited and imported back.
func WriteCategories(w io.Writer, cats []domain.TreatmentCategory) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetRow(sheet, "A1", &categoryHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, c := range cats {
		if err := setRow(f, sheet, i+2, []interface{}{c.ID, c.Name, money(c.BaseCost), c.Description}); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// ReadCategories reads categories from the active sheet. The first row must
// name the id, name and base_cost columns in any order; description is
// optional. Rows with an empty id are skipped.
func ReadCategories(r io.Reader) ([]domain.TreatmentCategory, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook (corrupt or not .xlsx): %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook has no header row")
	}

	cols := make(map[string]int)
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"id", "name", "base_cost"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q in header", required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []domain.TreatmentCategory
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		id := cell(row, "id")
		if id == "" {
			continue
		}
		costStr := strings.ReplaceAll(cell(row, "base_cost"), ",", ".")
		cost, err := domain.ParsePlainAmount(costStr)
		if err != nil || cost.IsNegative() {
			return nil, fmt.Errorf("row %d: invalid base_cost %q, use a non-negative number", i+1, costStr)
		}
		out = append(out, domain.TreatmentCategory{
			ID:          id,
			Name:        cell(row, "name"),
			BaseCost:    domain.RoundMoney(cost),
			Description: cell(row, "description"),
		})
	}
	return out, nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}

func money(d decimal.Decimal) float64 {
	return domain.RoundMoney(d).InexactFloat64()
}
