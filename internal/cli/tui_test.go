package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/alexanderramin/dentplan/internal/draft"
	"github.com/alexanderramin/dentplan/internal/repository"
	"github.com/alexanderramin/dentplan/internal/service"
	"github.com/alexanderramin/dentplan/internal/stepper"
	"github.com/alexanderramin/dentplan/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTUI_StartsOnEmptyEditor(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)

	assert.Equal(t, ViewEditor, d.ActiveViewID())
	assert.Equal(t, 1, d.ViewStackLen())

	screen := d.Screen()
	assert.Contains(t, screen, "New plan")
	assert.Contains(t, screen, "No treatments yet")
	assert.Contains(t, screen, "Pending")
	assert.True(t, d.Editor().draft.TotalCost().IsZero())
}

func TestTUI_AddCategoryFromPicker(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)

	d.AddCategory("wisdom")

	assert.Equal(t, ViewEditor, d.ActiveViewID())
	require.Len(t, d.Lines(), 1)
	li := d.Lines()[0]
	assert.Equal(t, "wisdom-extraction", li.CategoryID)
	assert.Equal(t, 1, li.Quantity)
	assert.True(t, li.TotalCost.Equal(dec("4500")))
	assert.Contains(t, d.Screen(), "Wisdom Tooth Extraction")
	assert.Contains(t, d.Screen(), "₹4,500.00")
	assert.Len(t, d.Editor().steppers, 1)
}

func TestTUI_PickerLimitAndShowAll(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)

	d.PressKey('a')
	require.Equal(t, ViewPicker, d.ActiveViewID())
	screen := d.Screen()
	assert.Contains(t, screen, "Consultation")
	assert.NotContains(t, screen, "IOPA X-Ray")
	assert.Contains(t, screen, "show all (15)")

	d.Press("tab")
	screen = d.Screen()
	assert.Contains(t, screen, "IOPA X-Ray")
	assert.Contains(t, screen, "show first 6")

	d.Press("tab")
	assert.NotContains(t, d.Screen(), "IOPA X-Ray")
}

func TestTUI_PickerEmptyStateAndCancel(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)

	d.PressKey('a')
	d.Type("zzz")
	assert.Contains(t, d.Screen(), `No categories match "zzz".`)

	// Enter on an empty list does nothing.
	d.Press("enter")
	assert.Equal(t, ViewPicker, d.ActiveViewID())

	d.Press("esc")
	assert.Equal(t, ViewEditor, d.ActiveViewID())
	assert.Empty(t, d.Lines())
}

func TestTUI_PickerHidesSelectedCategories(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)

	d.AddCategory("Composite")
	require.Len(t, d.Lines(), 1)
	assert.Equal(t, "filling", d.Lines()[0].CategoryID)

	d.PressKey('a')
	d.Type("filling")
	am := d.appModel()
	picker := am.activeView().(*pickerView)
	page := picker.page()
	require.Len(t, page.Items, 1)
	assert.Equal(t, "tc-filling", page.Items[0].ID)
}

func TestTUI_PickerArrowSelection(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)

	d.PressKey('a')
	d.Type("crown")
	d.Press("down")
	d.Press("enter")

	require.Len(t, d.Lines(), 1)
	assert.Equal(t, "crown-zirconia", d.Lines()[0].CategoryID)
}

func TestTUI_KeyboardStepsClamp(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)
	d.AddCategory("Composite")

	d.Type("+++")
	assert.Equal(t, 4, d.Lines()[0].Quantity)
	assert.True(t, d.Lines()[0].TotalCost.Equal(dec("6000")))
	assert.True(t, d.Editor().draft.TotalCost().Equal(dec("6000")))

	for range 10 {
		d.PressKey('-')
	}
	assert.Equal(t, 1, d.Lines()[0].Quantity)
	assert.Zero(t, d.Clock.Pending())
}

func TestTUI_MousePressAndHoldRepeats(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)
	d.AddCategory("Composite")

	d.PressStepper(0, stepper.Up)
	assert.Equal(t, 2, d.Lines()[0].Quantity)

	d.Advance(499 * time.Millisecond)
	assert.Equal(t, 2, d.Lines()[0].Quantity)

	d.Advance(1 * time.Millisecond)
	assert.Equal(t, stepper.Repeating, d.Editor().steppers["filling"].Phase())

	d.Advance(150 * time.Millisecond)
	assert.Equal(t, 3, d.Lines()[0].Quantity)

	d.Advance(450 * time.Millisecond)
	assert.Equal(t, 6, d.Lines()[0].Quantity)
	assert.True(t, d.Editor().draft.TotalCost().Equal(dec("9000")))

	d.ReleaseMouse()
	d.Advance(time.Second)
	assert.Equal(t, 6, d.Lines()[0].Quantity)
	assert.Zero(t, d.Clock.Pending())
}

func TestTUI_HoldGestureOnPlusButton(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)
	d.AddCategory("Composite")

	// Tap at 0ms, repeats at 650ms and 800ms.
	d.Hold(plusCol+1, headerHeight+editorFirstRow, 800*time.Millisecond)

	assert.Equal(t, 4, d.Lines()[0].Quantity)
	assert.Equal(t, stepper.Idle, d.Editor().steppers["filling"].Phase())
	assert.Zero(t, d.Clock.Pending())
}

func TestTUI_OpeningSubViewEndsHold(t *testing.T) {
	for _, key := range []rune{'a', 'b', 'm', 'p', 'q', 'e'} {
		t.Run(string(key), func(t *testing.T) {
			app := testApp(t)
			d := NewTestDriver(t, app, nil)
			d.AddCategory("Composite")

			d.PressStepper(0, stepper.Up)
			require.Equal(t, 2, d.Lines()[0].Quantity)

			d.PressKey(key)
			require.Equal(t, 2, d.ViewStackLen())
			d.ReleaseMouse()
			d.Advance(3 * time.Second)

			assert.Equal(t, 2, d.Lines()[0].Quantity)
			assert.Equal(t, stepper.Idle, d.Editor().steppers["filling"].Phase())
			assert.Zero(t, d.Clock.Pending())
		})
	}
}

func TestTUI_MouseHoldDownStopsAtMinimum(t *testing.T) {
	app := testApp(t)
	p := seedPlan(t, app, testutil.WithLineItem("filling", "1500", 5, "0"))
	stored, err := app.Plans.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	d := NewTestDriver(t, app, stored)

	d.PressStepper(0, stepper.Down)
	d.Advance(3 * time.Second)
	assert.Equal(t, 1, d.Lines()[0].Quantity)

	d.ReleaseMouse()
	assert.Equal(t, stepper.Idle, d.Editor().steppers["filling"].Phase())
}

func TestTUI_MouseHoldClampsAtMaximum(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)
	d.AddCategory("Composite")

	d.PressStepper(0, stepper.Up)
	d.Advance(5 * time.Second)
	d.ReleaseMouse()

	assert.Equal(t, domain.MaxQuantity, d.Lines()[0].Quantity)
	assert.True(t, d.Lines()[0].TotalCost.Equal(dec("30000")))
}

func TestTUI_MouseOutsideButtonsMovesCursorOnly(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)
	d.AddCategory("Composite")
	d.AddCategory("Root")
	require.Len(t, d.Lines(), 2)

	d.PressKey('k')
	assert.Equal(t, 0, d.Editor().cursor)

	d.MousePress(5, headerHeight+editorFirstRow+1)
	d.ReleaseMouse()

	assert.Equal(t, 1, d.Editor().cursor)
	assert.Equal(t, 1, d.Lines()[0].Quantity)
	assert.Equal(t, 1, d.Lines()[1].Quantity)
	assert.Zero(t, d.Clock.Pending())
}

func TestTUI_StepperButtonsLineUpWithHitColumns(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)
	d.AddCategory("Composite")

	row := []rune(d.Line("Filling"))
	require.Greater(t, len(row), plusCol+buttonWidth)
	assert.Equal(t, "[-]", string(row[minusCol:minusCol+buttonWidth]))
	assert.Equal(t, "[+]", string(row[plusCol:plusCol+buttonWidth]))
}

func TestTUI_RemoveLineClosesItsStepper(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)
	d.AddCategory("Composite")

	d.PressStepper(0, stepper.Up)
	require.Equal(t, 1, d.Clock.Pending())
	c := d.Editor().steppers["filling"]

	d.PressKey('d')

	assert.Empty(t, d.Lines())
	assert.Empty(t, d.Editor().steppers)
	assert.True(t, c.Closed())
	assert.Zero(t, d.Clock.Pending())
	assert.True(t, d.Editor().draft.TotalCost().IsZero())

	// A release after removal is harmless.
	d.ReleaseMouse()
}

func TestTUI_EditMaterialAndBaseCost(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)
	d.AddCategory("Composite")

	d.PressKey('m')
	require.Equal(t, ViewAmount, d.ActiveViewID())
	d.ClearInput()
	d.Type("250.5")
	d.Press("enter")

	assert.Equal(t, ViewEditor, d.ActiveViewID())
	li := d.Lines()[0]
	assert.True(t, li.MaterialCost.Equal(dec("250.50")))
	assert.True(t, li.TotalCost.Equal(dec("1750.50")))

	d.PressKey('b')
	d.ClearInput()
	d.Type("abc")
	d.Press("enter")

	li = d.Lines()[0]
	assert.True(t, li.BaseCost.IsZero())
	assert.True(t, li.TotalCost.Equal(dec("250.50")))
	assert.True(t, d.Editor().draft.TotalMaterialCost().Equal(dec("250.50")))
}

func TestTUI_EditParticulars(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)
	d.AddCategory("Composite")

	d.PressKey('p')
	d.Type("Upper left 6")
	d.Press("enter")

	assert.Equal(t, "Upper left 6", d.Lines()[0].Particulars)
	assert.Contains(t, d.Screen(), "Upper left 6")
}

func TestTUI_AmountEscKeepsValue(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)
	d.AddCategory("Composite")

	d.PressKey('m')
	d.Type("999")
	d.Press("esc")

	assert.Equal(t, ViewEditor, d.ActiveViewID())
	assert.True(t, d.Lines()[0].MaterialCost.IsZero())
}

func TestTUI_TypedQuantitySyncsStepper(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)
	d.AddCategory("Composite")

	d.PressKey('q')
	d.ClearInput()
	d.Type("25")
	d.Press("enter")

	assert.Equal(t, 20, d.Lines()[0].Quantity)
	assert.Equal(t, 20, d.Editor().steppers["filling"].Value())

	d.PressKey('+')
	assert.Equal(t, 20, d.Lines()[0].Quantity)
	d.PressKey('-')
	assert.Equal(t, 19, d.Lines()[0].Quantity)
}

func TestTUI_DetailsFormOpensAndCancels(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)

	d.PressKey('e')
	assert.Equal(t, ViewForm, d.ActiveViewID())
	assert.Equal(t, 2, d.ViewStackLen())

	d.Press("esc")
	assert.Equal(t, ViewEditor, d.ActiveViewID())
}

func TestTUI_DetailsSubmitted(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)

	d.Send(detailsSubmittedMsg{details: planDetails{
		Name:      "Full mouth rehab",
		PatientID: " PT-7 ",
		Status:    "in_progress",
		StartDate: "2026-01-05",
		EndDate:   "2026-03-01",
		Notes:     "Staged over three visits",
	}})

	dr := d.Editor().draft
	assert.NoError(t, d.Editor().err)
	assert.Equal(t, "Full mouth rehab", dr.Name())
	assert.Equal(t, "PT-7", dr.PatientID())
	assert.Equal(t, domain.PlanInProgress, dr.Status())
	assert.Equal(t, "2026-01-05", dr.StartDate())
	assert.Equal(t, "2026-03-01", dr.EndDate())
	assert.Contains(t, d.Screen(), "Full mouth rehab")
	assert.Contains(t, d.Screen(), "2026-01-05 → 2026-03-01")
}

func TestTUI_DetailsInvalidValuesReported(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)
	start := d.Editor().draft.StartDate()

	d.Send(detailsSubmittedMsg{details: planDetails{
		Name:      "Kept",
		Status:    "bogus",
		StartDate: "05/01/2026",
	}})

	err := d.Editor().err
	require.Error(t, err)
	assert.ErrorIs(t, err, draft.ErrInvalidDate)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Equal(t, "Kept", d.Editor().draft.Name())
	assert.Equal(t, start, d.Editor().draft.StartDate())
	assert.Equal(t, domain.PlanPending, d.Editor().draft.Status())
}

func TestTUI_SavePersistsAndQuits(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, &domain.TreatmentPlan{PatientID: "PT-9", Name: "Saved from editor"})
	d.AddCategory("Composite")
	d.PressKey('+')

	d.Press("ctrl+s")

	require.True(t, d.IsQuitting())
	saved := d.State().Saved
	require.NotNil(t, saved)
	assert.False(t, d.State().Cancelled)
	assert.NotEmpty(t, saved.ID)

	stored, err := app.Plans.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Saved from editor", stored.Name)
	assert.Equal(t, "PT-9", stored.PatientID)
	require.Len(t, stored.LineItems, 1)
	assert.Equal(t, 2, stored.LineItems[0].Quantity)
	assert.True(t, stored.TotalCost.Equal(dec("3000")))
	assert.Zero(t, d.Clock.Pending())
}

func TestTUI_EditExistingPlan(t *testing.T) {
	app := testApp(t)
	p := seedPlan(t, app,
		testutil.WithPlanName("Existing"),
		testutil.WithLineItem("filling", "1500", 3, "100"),
	)
	stored, err := app.Plans.GetByID(context.Background(), p.ID)
	require.NoError(t, err)

	d := NewTestDriver(t, app, stored)
	assert.Contains(t, d.Screen(), "Existing")
	assert.Contains(t, d.Screen(), "Edit "+p.ID[:8])
	require.Len(t, d.Editor().steppers, 1)
	assert.Equal(t, 3, d.Editor().steppers["filling"].Value())

	d.PressKey('+')
	d.Press("ctrl+s")
	require.True(t, d.IsQuitting())

	updated, err := app.Plans.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.LineItems[0].Quantity)
	assert.True(t, updated.TotalCost.Equal(dec("6100")))
	assert.True(t, updated.CreatedAt.Equal(stored.CreatedAt))

	all, err := app.Plans.List(context.Background(), repository.PlanFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

// flakyPlans fails Save while err is set.
type flakyPlans struct {
	service.PlanService
	err error
}

func (f *flakyPlans) Save(ctx context.Context, p *domain.TreatmentPlan) error {
	if f.err != nil {
		return f.err
	}
	return f.PlanService.Save(ctx, p)
}

func TestTUI_SaveFailureKeepsEditing(t *testing.T) {
	app := testApp(t)
	flaky := &flakyPlans{PlanService: app.Plans, err: errors.New("disk full")}
	app.Plans = flaky
	d := NewTestDriver(t, app, nil)
	d.AddCategory("Composite")
	d.PressKey('+')

	d.Press("ctrl+s")

	assert.False(t, d.IsQuitting())
	assert.Nil(t, d.State().Saved)
	assert.Contains(t, d.Screen(), "save failed: disk full")
	ed := d.Editor()
	assert.False(t, ed.draft.Closed())
	require.Len(t, d.Lines(), 1)
	assert.Equal(t, 2, d.Lines()[0].Quantity)
	require.Len(t, ed.steppers, 1)
	assert.Equal(t, 2, ed.steppers["filling"].Value())

	// The rebuilt draft keeps working, including the id it was given.
	firstID := ed.draft.ID()
	assert.NotEmpty(t, firstID)
	d.PressKey('+')
	assert.Equal(t, 3, d.Lines()[0].Quantity)

	flaky.err = nil
	d.Press("ctrl+s")
	require.True(t, d.IsQuitting())
	require.NotNil(t, d.State().Saved)
	assert.Equal(t, firstID, d.State().Saved.ID)
}

func TestTUI_EscCancelsWithoutSaving(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)
	d.AddCategory("Composite")

	d.Press("esc")

	assert.True(t, d.IsQuitting())
	assert.True(t, d.State().Cancelled)
	assert.Nil(t, d.State().Saved)

	plans, err := app.Plans.List(context.Background(), repository.PlanFilter{})
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestTUI_CtrlCTearsDownHeldStepper(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)
	d.AddCategory("Composite")
	d.PressStepper(0, stepper.Up)
	d.Advance(600 * time.Millisecond)
	require.Equal(t, 1, d.Clock.Pending())
	c := d.Editor().steppers["filling"]

	d.Press("ctrl+c")

	assert.True(t, d.IsQuitting())
	assert.True(t, d.State().Cancelled)
	assert.True(t, c.Closed())
	assert.Zero(t, d.Clock.Pending())
}

func TestTUI_CtrlCFromPickerTearsDownEditor(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)
	d.PressKey('a')

	d.Press("ctrl+c")

	assert.True(t, d.IsQuitting())
	assert.True(t, d.State().Cancelled)
}

func TestTUI_StepperFireMsgRunsOnLoop(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, nil)

	called := false
	d.Send(stepperFireMsg{fire: func() { called = true }})

	assert.True(t, called)
	assert.Equal(t, ViewEditor, d.ActiveViewID())
}
