package draft

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/alexanderramin/dentplan/internal/catalog"
	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillingCatalog() *catalog.Catalog {
	return catalog.New([]domain.TreatmentCategory{
		{ID: "c1", Name: "Filling", BaseCost: decimal.NewFromInt(1500)},
	})
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// assertInvariants checks the ledger against every derived-state rule.
func assertInvariants(t *testing.T, l *Ledger) {
	t.Helper()
	total := decimal.Zero
	material := decimal.Zero
	want := map[string]bool{}
	for _, li := range l.Items() {
		assert.True(t, domain.LineTotal(li.BaseCost, li.Quantity, li.MaterialCost).Equal(li.TotalCost),
			"line %s total %s", li.CategoryID, li.TotalCost)
		assert.GreaterOrEqual(t, li.Quantity, domain.MinQuantity)
		assert.LessOrEqual(t, li.Quantity, domain.MaxQuantity)
		assert.False(t, want[li.CategoryID], "duplicate category %s", li.CategoryID)
		want[li.CategoryID] = true
		total = total.Add(li.TotalCost)
		material = material.Add(li.MaterialCost)
	}
	assert.True(t, total.Equal(l.TotalCost()), "total %s != sum %s", l.TotalCost(), total)
	assert.True(t, material.Equal(l.TotalMaterialCost()), "material %s != sum %s", l.TotalMaterialCost(), material)

	assert.Len(t, l.selected, len(want))
	for id := range want {
		assert.True(t, l.IsSelected(id), "missing selection %s", id)
	}
}

func TestLedger_ScenarioA_Add(t *testing.T) {
	l := NewLedger(fillingCatalog())
	require.True(t, l.Add("c1"))

	require.Equal(t, 1, l.Len())
	li := l.Item(0)
	assert.Equal(t, "c1", li.CategoryID)
	assert.Equal(t, "Filling", li.CategoryName)
	assert.True(t, dec("1500").Equal(li.BaseCost))
	assert.Equal(t, 1, li.Quantity)
	assert.True(t, li.MaterialCost.IsZero())
	assert.Equal(t, "", li.Particulars)
	assert.True(t, dec("1500").Equal(li.TotalCost))
	assert.True(t, dec("1500").Equal(l.TotalCost()))
	assert.True(t, l.IsSelected("c1"))
}

func TestLedger_ScenarioB_Update(t *testing.T) {
	l := NewLedger(fillingCatalog())
	l.Add("c1")

	l.Update(0, FieldQuantity, "3")
	assert.True(t, dec("4500").Equal(l.Item(0).TotalCost))
	assert.True(t, dec("4500").Equal(l.TotalCost()))

	l.Update(0, FieldMaterialCost, "200")
	assert.True(t, dec("4700").Equal(l.Item(0).TotalCost))
	assert.True(t, dec("4700").Equal(l.TotalCost()))
	assert.True(t, dec("200").Equal(l.TotalMaterialCost()))
}

func TestLedger_ScenarioC_Remove(t *testing.T) {
	l := NewLedger(fillingCatalog())
	l.Add("c1")
	l.Update(0, FieldQuantity, "3")
	l.Update(0, FieldMaterialCost, "200")

	l.Remove(0)
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.SelectedCategoryIDs())
	assert.False(t, l.IsSelected("c1"))
	assert.True(t, l.TotalCost().IsZero())
	assert.True(t, l.TotalMaterialCost().IsZero())
}

func TestLedger_DuplicateAddIsIgnored(t *testing.T) {
	l := NewLedger(fillingCatalog())
	assert.True(t, l.Add("c1"))
	assert.False(t, l.Add("c1"))
	assert.Equal(t, 1, l.Len())
	assertInvariants(t, l)
}

func TestLedger_UnknownCategoryIsIgnored(t *testing.T) {
	l := NewLedger(fillingCatalog())
	assert.False(t, l.Add("nope"))
	assert.Equal(t, 0, l.Len())
	assert.True(t, l.TotalCost().IsZero())
}

func TestLedger_NonNumericCoercesToZero(t *testing.T) {
	l := NewLedger(fillingCatalog())
	l.Add("c1")

	l.Update(0, FieldMaterialCost, "lots")
	assert.True(t, l.Item(0).MaterialCost.IsZero())

	l.Update(0, FieldBaseCost, "free")
	assert.True(t, l.Item(0).BaseCost.IsZero())
	assert.True(t, l.Item(0).TotalCost.IsZero())

	l.Update(0, FieldQuantity, "many")
	assert.Equal(t, 1, l.Item(0).Quantity)
	assertInvariants(t, l)
}

func TestLedger_QuantityClampedAtWrite(t *testing.T) {
	l := NewLedger(fillingCatalog())
	l.Add("c1")

	l.Update(0, FieldQuantity, "50")
	assert.Equal(t, 20, l.Item(0).Quantity)
	assert.True(t, dec("30000").Equal(l.TotalCost()))

	l.SetQuantity(0, -4)
	assert.Equal(t, 1, l.Item(0).Quantity)
	assert.True(t, dec("1500").Equal(l.TotalCost()))
}

func TestLedger_BaseCostEditDivergesFromCatalog(t *testing.T) {
	l := NewLedger(fillingCatalog())
	l.Add("c1")
	l.Update(0, FieldBaseCost, "1250.50")
	l.Update(0, FieldQuantity, "2")
	assert.True(t, dec("2501").Equal(l.TotalCost()))
}

func TestLedger_ParticularsDoNotAffectTotals(t *testing.T) {
	l := NewLedger(fillingCatalog())
	l.Add("c1")
	l.Update(0, FieldParticulars, "upper left 6")
	assert.Equal(t, "upper left 6", l.Item(0).Particulars)
	assert.True(t, dec("1500").Equal(l.TotalCost()))
}

func TestLedger_OutOfRangeIndexPanics(t *testing.T) {
	l := NewLedger(fillingCatalog())
	assert.Panics(t, func() { l.Update(0, FieldQuantity, "2") })
	assert.Panics(t, func() { l.Remove(-1) })
	l.Add("c1")
	assert.Panics(t, func() { l.Remove(1) })
	assert.Panics(t, func() { l.SetQuantity(3, 2) })
}

func TestLedger_UnknownFieldPanics(t *testing.T) {
	l := NewLedger(fillingCatalog())
	l.Add("c1")
	assert.Panics(t, func() { l.Update(0, Field(42), "1") })
}

func TestLedger_RemoveKeepsOrder(t *testing.T) {
	l := NewLedger(catalog.New(catalog.DefaultCategories()))
	l.Add("filling")
	l.Add("rct")
	l.Add("xray")

	l.Remove(1)
	assert.Equal(t, []string{"filling", "xray"}, l.SelectedCategoryIDs())
	assert.Equal(t, 1, l.IndexOf("xray"))
	assert.Equal(t, -1, l.IndexOf("rct"))
	assertInvariants(t, l)
}

func TestLedger_ItemsAreCopies(t *testing.T) {
	l := NewLedger(fillingCatalog())
	l.Add("c1")
	items := l.Items()
	items[0].Quantity = 9
	assert.Equal(t, 1, l.Item(0).Quantity)
}

func TestLedger_InvariantsHoldAcrossRandomOperations(t *testing.T) {
	cats := catalog.DefaultCategories()
	l := NewLedger(catalog.New(cats))
	rng := rand.New(rand.NewSource(7))
	inputs := []string{"0", "1", "3", "19", "25", "-2", "abc", "120.75", "", "₹2,000"}
	fields := []Field{FieldBaseCost, FieldQuantity, FieldMaterialCost, FieldParticulars}

	for step := 0; step < 500; step++ {
		switch op := rng.Intn(4); {
		case op == 0 || l.Len() == 0:
			l.Add(cats[rng.Intn(len(cats))].ID)
		case op == 1:
			l.Remove(rng.Intn(l.Len()))
		case op == 2:
			l.Update(rng.Intn(l.Len()), fields[rng.Intn(len(fields))], inputs[rng.Intn(len(inputs))])
		default:
			l.SetQuantity(rng.Intn(l.Len()), rng.Intn(30)-5)
		}
		assertInvariants(t, l)
		if t.Failed() {
			t.Fatalf("invariant broken at step %d", step)
		}
	}
}

func TestParseField(t *testing.T) {
	for _, f := range []Field{FieldBaseCost, FieldQuantity, FieldMaterialCost, FieldParticulars} {
		got, err := ParseField(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	got, err := ParseField("material_cost")
	require.NoError(t, err)
	assert.Equal(t, FieldMaterialCost, got)

	_, err = ParseField("totalCost")
	assert.Error(t, err, "totalCost is derived and must not be settable")
}

func TestSelectedCategoryIDs_MatchesLines(t *testing.T) {
	l := NewLedger(catalog.New(catalog.DefaultCategories()))
	for _, id := range []string{"xray", "filling", "implant"} {
		l.Add(id)
	}
	got := l.SelectedCategoryIDs()
	sorted := append([]string(nil), got...)
	sort.Strings(sorted)
	assert.Equal(t, []string{"filling", "implant", "xray"}, sorted)
	assert.Len(t, l.selected, 3)
}
