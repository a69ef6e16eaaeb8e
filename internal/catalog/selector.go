package catalog

import (
	"strings"

	"github.com/alexanderramin/dentplan/internal/domain"
)

// DefaultDisplayLimit is how many categories are shown before the caller
// has to offer a "show all" affordance.
const DefaultDisplayLimit = 6

// Selection reports which categories a draft already uses.
type Selection interface {
	IsSelected(categoryID string) bool
}

// Selector filters the catalog for the add-category picker.
type Selector struct {
	catalog *Catalog
	limit   int
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithDisplayLimit overrides DefaultDisplayLimit. Values below 1 are ignored.
func WithDisplayLimit(n int) SelectorOption {
	return func(s *Selector) {
		if n >= 1 {
			s.limit = n
		}
	}
}

func NewSelector(c *Catalog, opts ...SelectorOption) *Selector {
	s := &Selector{catalog: c, limit: DefaultDisplayLimit}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DisplayLimit returns the configured limit.
func (s *Selector) DisplayLimit() int { return s.limit }

// Available returns the categories not yet in sel whose name or description
// contains query (case-insensitive, trimmed). Catalog order is preserved.
// A nil sel excludes nothing.
func (s *Selector) Available(sel Selection, query string) []domain.TreatmentCategory {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []domain.TreatmentCategory
	for _, c := range s.catalog.items {
		if sel != nil && sel.IsSelected(c.ID) {
			continue
		}
		if q != "" && !matches(c, q) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matches(c domain.TreatmentCategory, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(c.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(c.Description), lowerQuery)
}

// Page is one rendering of the picker list.
type Page struct {
	Items      []domain.TreatmentCategory
	Total      int // available count before the display limit
	Limit      int
	HasMore    bool // Total exceeds Limit; offer "show all"
	ShowingAll bool
}

// Empty reports the no-results state.
func (p Page) Empty() bool { return p.Total == 0 }

// Page applies the display limit to Available. showAll is UI state owned by
// the caller.
func (s *Selector) Page(sel Selection, query string, showAll bool) Page {
	avail := s.Available(sel, query)
	p := Page{
		Items:      avail,
		Total:      len(avail),
		Limit:      s.limit,
		HasMore:    len(avail) > s.limit,
		ShowingAll: showAll,
	}
	if !showAll && p.HasMore {
		p.Items = avail[:s.limit]
	}
	return p
}
