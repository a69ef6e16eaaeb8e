package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/alexanderramin/dentplan/internal/stepper"
	"github.com/alexanderramin/dentplan/internal/teatest"
	"github.com/alexanderramin/dentplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

// TestDriver wraps teatest.Driver with editor-specific inspection methods.
// Stepper timers run on a manual clock, advanced explicitly by the test.
type TestDriver struct {
	*teatest.Driver
	Clock *testutil.ManualScheduler
	state *SharedState
}

// NewTestDriver opens the editor on base (nil for an empty plan).
func NewTestDriver(t *testing.T, app *App, base *domain.TreatmentPlan) *TestDriver {
	t.Helper()

	cat, err := app.Categories.Catalog(context.Background())
	require.NoError(t, err)

	clock := testutil.NewManualScheduler()
	state := newSharedState(app, cat, clock)
	m := newAppModel(state, newEditorView(state, base))
	d := teatest.New(t, m, teatest.WithSize(140, 40), teatest.WithClock(clock))
	d.DrainInit()

	return &TestDriver{Driver: d, Clock: clock, state: state}
}

// ── High-level helpers ───────────────────────────────────────────────────────

// AddCategory opens the picker, searches for query and picks the first match.
func (d *TestDriver) AddCategory(query string) {
	d.T.Helper()
	d.PressKey('a')
	d.Type(query)
	d.Press("enter")
}

// PressStepper presses the [-] or [+] button of line row and keeps it held.
func (d *TestDriver) PressStepper(row int, dir stepper.Direction) {
	d.T.Helper()
	x := plusCol
	if dir == stepper.Down {
		x = minusCol
	}
	d.MousePress(x+1, headerHeight+editorFirstRow+row)
}

// ReleaseMouse lifts the mouse button anywhere on screen.
func (d *TestDriver) ReleaseMouse() {
	d.T.Helper()
	d.MouseRelease(0, 0)
}

// ClearInput empties the focused text input.
func (d *TestDriver) ClearInput() {
	d.T.Helper()
	d.Backspace(20)
}

// ── Inspection ───────────────────────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// Editor returns the editor at the bottom of the stack.
func (d *TestDriver) Editor() *editorView {
	return d.appModel().viewStack[0].(*editorView)
}

// Lines returns the draft's current line items.
func (d *TestDriver) Lines() []domain.CostLineItem {
	return d.Editor().draft.Ledger().Items()
}

// State returns the shared state pointer for direct assertions.
func (d *TestDriver) State() *SharedState {
	return d.state
}

// IsQuitting returns whether the app has signalled quit.
func (d *TestDriver) IsQuitting() bool {
	return d.Quitting || d.appModel().quitting
}
