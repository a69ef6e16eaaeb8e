package draft

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/shopspring/decimal"
)

// CategoryLookup resolves a category id at add time. *catalog.Catalog
// satisfies it.
type CategoryLookup interface {
	Get(id string) (domain.TreatmentCategory, bool)
}

// Field names an externally settable line item field.
type Field int

const (
	FieldBaseCost Field = iota
	FieldQuantity
	FieldMaterialCost
	FieldParticulars
)

func (f Field) String() string {
	switch f {
	case FieldBaseCost:
		return "baseCost"
	case FieldQuantity:
		return "quantity"
	case FieldMaterialCost:
		return "materialCost"
	case FieldParticulars:
		return "particulars"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// ParseField accepts camelCase or snake_case field names.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "_", "")) {
	case "basecost":
		return FieldBaseCost, nil
	case "quantity", "qty":
		return FieldQuantity, nil
	case "materialcost":
		return FieldMaterialCost, nil
	case "particulars":
		return FieldParticulars, nil
	}
	return 0, fmt.Errorf("unknown line item field %q", s)
}

// Ledger owns the ordered cost lines of a draft and the totals derived from
// them. Every mutating method recomputes the totals before returning, so a
// caller never observes lines and totals out of step.
type Ledger struct {
	lookup   CategoryLookup
	items    []domain.CostLineItem
	selected map[string]struct{}

	totalCost         decimal.Decimal
	totalMaterialCost decimal.Decimal

	frozen bool
}

// NewLedger returns an empty ledger seeding new lines from lookup.
func NewLedger(lookup CategoryLookup) *Ledger {
	return &Ledger{
		lookup:            lookup,
		selected:          make(map[string]struct{}),
		totalCost:         decimal.Zero,
		totalMaterialCost: decimal.Zero,
	}
}

// Add appends a line for categoryID with quantity 1 and no material cost.
// Unknown or already-present categories are ignored; the return value
// reports whether a line was added.
func (l *Ledger) Add(categoryID string) bool {
	if l.frozen || l.lookup == nil {
		return false
	}
	if _, dup := l.selected[categoryID]; dup {
		return false
	}
	cat, ok := l.lookup.Get(categoryID)
	if !ok {
		return false
	}
	li := domain.CostLineItem{
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		BaseCost:     domain.NonNegativeMoney(cat.BaseCost),
		Quantity:     domain.MinQuantity,
		MaterialCost: decimal.Zero,
	}
	li.Recompute()
	l.items = append(l.items, li)
	l.selected[cat.ID] = struct{}{}
	l.recomputeTotals()
	return true
}

// Update writes raw into field of the line at index. Cost fields coerce
// non-numeric input to zero; quantity is clamped to [1, 20].
// index must come from the current Items; anything else panics.
func (l *Ledger) Update(index int, field Field, raw string) {
	l.checkIndex(index)
	if l.frozen {
		return
	}
	li := &l.items[index]
	switch field {
	case FieldBaseCost:
		li.BaseCost = domain.ParseAmount(raw)
	case FieldQuantity:
		li.Quantity = domain.ParseQuantity(raw)
	case FieldMaterialCost:
		li.MaterialCost = domain.ParseAmount(raw)
	case FieldParticulars:
		li.Particulars = raw
	default:
		panic(fmt.Sprintf("ledger: unsupported field %v", field))
	}
	li.Recompute()
	l.recomputeTotals()
}

// SetQuantity is the typed quantity path used by the stepper.
func (l *Ledger) SetQuantity(index, q int) {
	l.checkIndex(index)
	if l.frozen {
		return
	}
	li := &l.items[index]
	li.Quantity = domain.ClampQuantity(q)
	li.Recompute()
	l.recomputeTotals()
}

// Remove deletes the line at index and releases its category.
func (l *Ledger) Remove(index int) {
	l.checkIndex(index)
	if l.frozen {
		return
	}
	delete(l.selected, l.items[index].CategoryID)
	l.items = append(l.items[:index], l.items[index+1:]...)
	l.recomputeTotals()
}

func (l *Ledger) recomputeTotals() {
	total := decimal.Zero
	material := decimal.Zero
	for _, li := range l.items {
		total = total.Add(li.TotalCost)
		material = material.Add(li.MaterialCost)
	}
	l.totalCost = total
	l.totalMaterialCost = material
}

func (l *Ledger) checkIndex(index int) {
	if index < 0 || index >= len(l.items) {
		panic(fmt.Sprintf("ledger: index %d out of range [0,%d)", index, len(l.items)))
	}
}

// load replaces the ledger contents with lines copied from a stored plan.
// Lines are normalised and duplicate categories after the first are dropped.
func (l *Ledger) load(lines []domain.CostLineItem) {
	l.items = l.items[:0]
	l.selected = make(map[string]struct{}, len(lines))
	for _, li := range lines {
		if _, dup := l.selected[li.CategoryID]; dup {
			continue
		}
		li.BaseCost = domain.NonNegativeMoney(li.BaseCost)
		li.MaterialCost = domain.NonNegativeMoney(li.MaterialCost)
		li.Quantity = domain.ClampQuantity(li.Quantity)
		li.Recompute()
		l.items = append(l.items, li)
		l.selected[li.CategoryID] = struct{}{}
	}
	l.recomputeTotals()
}

// Len returns the number of lines.
func (l *Ledger) Len() int { return len(l.items) }

// Item returns a copy of the line at index.
func (l *Ledger) Item(index int) domain.CostLineItem {
	l.checkIndex(index)
	return l.items[index]
}

// Items returns a copy of all lines in order.
func (l *Ledger) Items() []domain.CostLineItem {
	out := make([]domain.CostLineItem, len(l.items))
	copy(out, l.items)
	return out
}

// IndexOf returns the position of the line for categoryID, or -1.
func (l *Ledger) IndexOf(categoryID string) int {
	for i, li := range l.items {
		if li.CategoryID == categoryID {
			return i
		}
	}
	return -1
}

// IsSelected reports whether categoryID already has a line. It lets a
// Ledger act as a catalog.Selection.
func (l *Ledger) IsSelected(categoryID string) bool {
	_, ok := l.selected[categoryID]
	return ok
}

// SelectedCategoryIDs returns the used category ids in line order.
func (l *Ledger) SelectedCategoryIDs() []string {
	out := make([]string, 0, len(l.items))
	for _, li := range l.items {
		out = append(out, li.CategoryID)
	}
	return out
}

func (l *Ledger) TotalCost() decimal.Decimal         { return l.totalCost }
func (l *Ledger) TotalMaterialCost() decimal.Decimal { return l.totalMaterialCost }
