package formatter

import (
	"fmt"

	"github.com/alexanderramin/dentplan/internal/domain"
)

// FormatCategories renders catalog entries as a table.
func FormatCategories(cats []domain.TreatmentCategory, symbol string) string {
	cols := []Column{
		{Title: "ID"},
		{Title: "NAME"},
		{Title: "BASE COST", Align: AlignRight},
		{Title: "DESCRIPTION"},
	}
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{
			StyleID.Render(c.ID),
			c.Name,
			Money(symbol, c.BaseCost),
			Dim(Truncate(c.Description, 40)),
		})
	}
	return RenderTable(cols, rows)
}

// NoCategoriesMatch is the empty-state line for a search with no results.
func NoCategoriesMatch(query string) string {
	if query == "" {
		return Dim("No categories available.")
	}
	return Dim(fmt.Sprintf("No categories match %q.", query))
}
