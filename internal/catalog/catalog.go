// Package catalog holds the read-only set of treatment categories and the
// selector that filters it against a draft plan's already-used categories.
package catalog

import "github.com/alexanderramin/dentplan/internal/domain"

// Catalog is an ordered, read-only lookup of treatment categories. It is
// safe to share between any number of selectors and ledgers.
type Catalog struct {
	items []domain.TreatmentCategory
	byID  map[string]int
}

// New builds a Catalog preserving the given order. Later entries that reuse
// an id already seen are ignored.
func New(categories []domain.TreatmentCategory) *Catalog {
	c := &Catalog{
		items: make([]domain.TreatmentCategory, 0, len(categories)),
		byID:  make(map[string]int, len(categories)),
	}
	for _, cat := range categories {
		if _, dup := c.byID[cat.ID]; dup {
			continue
		}
		c.byID[cat.ID] = len(c.items)
		c.items = append(c.items, cat)
	}
	return c
}

// Get looks up a category by id. The bool is false for an unknown id.
func (c *Catalog) Get(id string) (domain.TreatmentCategory, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.TreatmentCategory{}, false
	}
	return c.items[i], true
}

// List returns a copy of all categories in catalog order.
func (c *Catalog) List() []domain.TreatmentCategory {
	out := make([]domain.TreatmentCategory, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.items)
}
