package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/shopspring/decimal"
)

// FormatPlanList renders stored plan headers as a table.
func FormatPlanList(plans []*domain.TreatmentPlan, symbol string) string {
	if len(plans) == 0 {
		return Dim("No plans found.") + "\n"
	}
	cols := []Column{
		{Title: "ID"},
		{Title: "PLAN"},
		{Title: "PATIENT"},
		{Title: "STATUS"},
		{Title: "START"},
		{Title: "END"},
		{Title: "TOTAL", Align: AlignRight},
	}
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		patient := p.PatientID
		if patient == "" {
			patient = Dim("—")
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Truncate(p.DisplayName(), 28),
			patient,
			StatusPill(p.Status),
			p.StartDate,
			DateOrDash(p.EndDate),
			Money(symbol, p.TotalCost),
		})
	}
	return RenderTable(cols, rows)
}

// LineItemColumns are the columns of a plan's cost table.
var LineItemColumns = []Column{
	{Title: "#", Align: AlignRight},
	{Title: "CATEGORY"},
	{Title: "BASE", Align: AlignRight},
	{Title: "QTY", Align: AlignRight},
	{Title: "MATERIAL", Align: AlignRight},
	{Title: "PARTICULARS"},
	{Title: "TOTAL", Align: AlignRight},
}

// FormatLineItems renders the cost table with a totals footer.
func FormatLineItems(items []domain.CostLineItem, total, material decimal.Decimal, symbol string) string {
	if len(items) == 0 {
		return Dim("No treatment lines.") + "\n"
	}
	rows := make([][]string, 0, len(items))
	for i, li := range items {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			li.CategoryName,
			Money(symbol, li.BaseCost),
			strconv.Itoa(li.Quantity),
			Money(symbol, li.MaterialCost),
			Truncate(li.Particulars, 30),
			Money(symbol, li.TotalCost),
		})
	}
	footer := []string{"", "Total", "", "", Money(symbol, material), "", Money(symbol, total)}
	return RenderTable(LineItemColumns, rows, footer...)
}

// FormatPlanDetail renders one plan: its scheduling fields, the cost table
// and notes.
func FormatPlanDetail(p *domain.TreatmentPlan, symbol string) string {
	var b strings.Builder
	meta := [][2]string{
		{"ID", p.ID},
		{"Patient", p.PatientID},
		{"Status", StatusPill(p.Status)},
		{"Start", p.StartDate},
		{"End", DateOrDash(p.EndDate)},
	}
	for _, kv := range meta {
		if kv[1] == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("%s %s\n", Dim(PadRight(kv[0]+":", 9)), kv[1]))
	}
	b.WriteString("\n")
	b.WriteString(FormatLineItems(p.LineItems, p.TotalCost, p.TotalMaterialCost, symbol))
	if p.Notes != "" {
		b.WriteString("\n" + Dim("Notes: ") + p.Notes + "\n")
	}
	return RenderBox(p.DisplayName(), strings.TrimRight(b.String(), "\n"))
}
