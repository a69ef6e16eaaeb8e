package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/dentplan/internal/cli/formatter"
	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/alexanderramin/dentplan/internal/draft"
	"github.com/alexanderramin/dentplan/internal/stepper"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Editor row layout, in terminal cells.
const (
	cursorWidth  = 2
	nameWidth    = 24
	moneyWidth   = 14
	colGap       = 2
	buttonWidth  = 3
	stepperWidth = 2*buttonWidth + 5 // "[-] nn [+]"
	tableWidth   = cursorWidth + nameWidth + 3*moneyWidth + stepperWidth + 4*colGap

	// editorFirstRow is the first line item row, counted from the top of
	// the view: summary, blank, column titles, separator.
	editorFirstRow = 4

	minusCol = cursorWidth + nameWidth + colGap + moneyWidth + colGap
	plusCol  = minusCol + buttonWidth + 4
)

type categoryPickedMsg struct {
	categoryID string
}

type fieldEditedMsg struct {
	categoryID string
	field      draft.Field
	raw        string
}

type detailsSubmittedMsg struct {
	details planDetails
}

type planSavedMsg struct {
	plan domain.TreatmentPlan
	err  error
}

// editorView edits one draft. Each line owns a stepper controller keyed by
// category id; the controller's OnChange writes the quantity back into the
// ledger.
type editorView struct {
	state    *SharedState
	draft    *draft.Draft
	steppers map[string]*stepper.Controller
	held     *stepper.Controller
	cursor   int
	saving   bool
	err      error
}

func newEditorView(state *SharedState, base *domain.TreatmentPlan) *editorView {
	v := &editorView{state: state}
	v.load(base)
	return v
}

// load replaces the draft with one copied from p and rebuilds the steppers.
func (v *editorView) load(p *domain.TreatmentPlan) {
	v.closeSteppers()
	v.draft = draft.FromPlan(p, v.state.Catalog, draft.OnCancel(func() {
		v.state.Cancelled = true
	}))
	v.steppers = make(map[string]*stepper.Controller)
	for _, li := range v.draft.Ledger().Items() {
		v.attachStepper(li.CategoryID, li.Quantity)
	}
	v.cursor = min(v.cursor, max(v.draft.Ledger().Len()-1, 0))
}

func (v *editorView) attachStepper(categoryID string, qty int) {
	cfg := v.state.App.Config.Stepper
	v.steppers[categoryID] = stepper.New(v.state.Scheduler, stepper.Options{
		Min:            domain.MinQuantity,
		Max:            domain.MaxQuantity,
		Value:          qty,
		ArmDelay:       cfg.ArmDelay(),
		RepeatInterval: cfg.RepeatInterval(),
		OnChange: func(q int) {
			l := v.draft.Ledger()
			if i := l.IndexOf(categoryID); i >= 0 {
				l.SetQuantity(i, q)
			}
		},
	})
}

func (v *editorView) closeSteppers() {
	for id, c := range v.steppers {
		c.Close()
		delete(v.steppers, id)
	}
	v.held = nil
}

// TearDown discards an unsaved draft and stops every pending timer.
func (v *editorView) TearDown() {
	if !v.draft.Closed() {
		_ = v.draft.Cancel()
	}
	if len(v.steppers) > 0 {
		v.state.Logger().Debug("closing steppers", "count", len(v.steppers))
	}
	v.closeSteppers()
}

func (v *editorView) ID() ViewID { return ViewEditor }

func (v *editorView) Title() string {
	if v.draft.ID() == "" {
		return "New plan"
	}
	return "Edit " + formatter.ShortID(v.draft.ID())
}

func (v *editorView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
		key.NewBinding(key.WithKeys("+", "-"), key.WithHelp("+/-", "qty")),
		key.NewBinding(key.WithKeys("b", "m", "p"), key.WithHelp("b/m/p", "base/material/notes")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "details")),
		key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *editorView) Init() tea.Cmd { return nil }

func (v *editorView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.saving {
			return v, nil
		}
		v.err = nil
		return v, v.updateKey(msg)

	case tea.MouseMsg:
		v.updateMouse(msg)
		return v, nil

	case categoryPickedMsg:
		l := v.draft.Ledger()
		if l.Add(msg.categoryID) {
			li := l.Item(l.Len() - 1)
			v.attachStepper(li.CategoryID, li.Quantity)
			v.cursor = l.Len() - 1
		}
		return v, nil

	case fieldEditedMsg:
		v.applyField(msg)
		return v, nil

	case detailsSubmittedMsg:
		v.err = msg.details.apply(v.draft)
		return v, nil

	case planSavedMsg:
		v.saving = false
		if msg.err != nil {
			v.state.Logger().Error("saving plan failed", "plan_id", msg.plan.ID, "error", msg.err)
			v.err = fmt.Errorf("save failed: %w", msg.err)
			v.load(&msg.plan)
			return v, nil
		}
		v.state.Logger().Debug("plan saved", "plan_id", msg.plan.ID)
		saved := msg.plan
		v.state.Saved = &saved
		return v, quit
	}
	return v, nil
}

// updateKey handles a key press. Any key that leaves the editor (a sub-view,
// save or cancel) first ends a mouse hold, since the release would go to
// the view on top.
func (v *editorView) updateKey(msg tea.KeyMsg) tea.Cmd {
	cmd := v.handleKey(msg)
	if cmd != nil {
		v.releaseHeld()
	}
	return cmd
}

func (v *editorView) handleKey(msg tea.KeyMsg) tea.Cmd {
	l := v.draft.Ledger()
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < l.Len()-1 {
			v.cursor++
		}
	case "a":
		return pushView(newPickerView(v.state, l))
	case "d", "delete":
		v.removeCurrent()
	case "+", "=":
		v.step(stepper.Up)
	case "-", "_":
		v.step(stepper.Down)
	case "b":
		return v.editField(draft.FieldBaseCost)
	case "m":
		return v.editField(draft.FieldMaterialCost)
	case "p":
		return v.editField(draft.FieldParticulars)
	case "q":
		return v.editField(draft.FieldQuantity)
	case "e":
		return v.editDetails()
	case "ctrl+s":
		return v.save()
	case "esc":
		return v.cancel()
	}
	return nil
}

// updateMouse maps a left press on a row's [-] or [+] to PressIn and any
// release to PressOut, giving press-and-hold auto-repeat.
func (v *editorView) updateMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || v.saving {
			return
		}
		l := v.draft.Ledger()
		row := msg.Y - editorFirstRow
		if row < 0 || row >= l.Len() {
			return
		}
		v.cursor = row
		dir := stepperHit(msg.X)
		if dir == stepper.None {
			return
		}
		c := v.steppers[l.Item(row).CategoryID]
		if c == nil {
			return
		}
		if v.held != nil && v.held != c {
			v.held.PressOut()
		}
		v.held = c
		c.PressIn(dir)

	case tea.MouseActionRelease:
		v.releaseHeld()
	}
}

func (v *editorView) releaseHeld() {
	if v.held != nil {
		v.held.PressOut()
		v.held = nil
	}
}

func stepperHit(x int) stepper.Direction {
	switch {
	case x >= minusCol && x < minusCol+buttonWidth:
		return stepper.Down
	case x >= plusCol && x < plusCol+buttonWidth:
		return stepper.Up
	}
	return stepper.None
}

func (v *editorView) current() (domain.CostLineItem, bool) {
	l := v.draft.Ledger()
	if v.cursor < 0 || v.cursor >= l.Len() {
		return domain.CostLineItem{}, false
	}
	return l.Item(v.cursor), true
}

func (v *editorView) step(dir stepper.Direction) {
	li, ok := v.current()
	if !ok {
		return
	}
	if c := v.steppers[li.CategoryID]; c != nil {
		c.Step(dir)
	}
}

func (v *editorView) removeCurrent() {
	li, ok := v.current()
	if !ok || v.draft.Closed() {
		return
	}
	l := v.draft.Ledger()
	l.Remove(v.cursor)
	if c := v.steppers[li.CategoryID]; c != nil {
		if v.held == c {
			v.held = nil
		}
		c.Close()
		delete(v.steppers, li.CategoryID)
	}
	if v.cursor >= l.Len() && v.cursor > 0 {
		v.cursor--
	}
}

func (v *editorView) editField(f draft.Field) tea.Cmd {
	li, ok := v.current()
	if !ok {
		return nil
	}
	var current string
	switch f {
	case draft.FieldBaseCost:
		current = li.BaseCost.StringFixed(domain.MoneyPlaces)
	case draft.FieldMaterialCost:
		current = li.MaterialCost.StringFixed(domain.MoneyPlaces)
	case draft.FieldQuantity:
		current = strconv.Itoa(li.Quantity)
	case draft.FieldParticulars:
		current = li.Particulars
	}
	return pushView(newAmountView(li, f, current))
}

func (v *editorView) applyField(msg fieldEditedMsg) {
	l := v.draft.Ledger()
	i := l.IndexOf(msg.categoryID)
	if i < 0 {
		return
	}
	l.Update(i, msg.field, msg.raw)
	if msg.field == draft.FieldQuantity {
		if c := v.steppers[msg.categoryID]; c != nil {
			c.SetValue(l.Item(i).Quantity)
		}
	}
}

func (v *editorView) editDetails() tea.Cmd {
	values := detailsFromDraft(v.draft)
	form := planDetailsForm(values)
	return pushView(newFormView(v.state, "Details", form, func() tea.Msg {
		return detailsSubmittedMsg{details: *values}
	}))
}

// save closes the draft and persists the produced plan off the event loop.
func (v *editorView) save() tea.Cmd {
	plan, err := v.draft.Save()
	if err != nil {
		v.err = err
		return nil
	}
	v.closeSteppers()
	v.saving = true
	plans := v.state.App.Plans
	return func() tea.Msg {
		err := plans.Save(context.Background(), &plan)
		return planSavedMsg{plan: plan, err: err}
	}
}

func (v *editorView) cancel() tea.Cmd {
	if err := v.draft.Cancel(); err != nil {
		v.err = err
		return nil
	}
	v.closeSteppers()
	return quit
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *editorView) View() string {
	var b strings.Builder
	b.WriteString(v.renderSummary())
	b.WriteString("\n\n")

	gap := strings.Repeat(" ", colGap)
	titles := strings.Repeat(" ", cursorWidth) +
		formatter.PadRight("CATEGORY", nameWidth) + gap +
		formatter.PadLeft("BASE", moneyWidth) + gap +
		formatter.PadRight("   QTY", stepperWidth) + gap +
		formatter.PadLeft("MATERIAL", moneyWidth) + gap +
		formatter.PadLeft("TOTAL", moneyWidth) + gap +
		"PARTICULARS"
	b.WriteString(formatter.StyleAccent.Render(titles) + "\n")
	sep := formatter.Dim(strings.Repeat("─", tableWidth))
	b.WriteString(sep + "\n")

	l := v.draft.Ledger()
	if l.Len() == 0 {
		b.WriteString(formatter.Dim("  No treatments yet. Press a to add one.") + "\n")
	}
	for i, li := range l.Items() {
		b.WriteString(v.renderRow(i, li) + "\n")
	}

	b.WriteString(sep + "\n")
	b.WriteString(strings.Repeat(" ", cursorWidth) +
		formatter.PadRight(formatter.Bold("Total"), nameWidth) + gap +
		strings.Repeat(" ", moneyWidth) + gap +
		strings.Repeat(" ", stepperWidth) + gap +
		formatter.PadLeft(v.state.Money(v.draft.TotalMaterialCost()), moneyWidth) + gap +
		formatter.PadLeft(formatter.Bold(v.state.Money(v.draft.TotalCost())), moneyWidth))

	switch {
	case v.saving:
		b.WriteString("\n\n" + formatter.Dim("Saving..."))
	case v.err != nil:
		b.WriteString("\n\n" + formatter.StyleError.Render(v.err.Error()))
	}
	return b.String()
}

func (v *editorView) renderSummary() string {
	snap := v.draft.Snapshot()
	parts := []string{
		formatter.Bold(snap.DisplayName()),
		formatter.StatusPill(snap.Status),
	}
	if snap.PatientID != "" {
		parts = append(parts, formatter.Dim("patient ")+snap.PatientID)
	}
	dates := snap.StartDate
	if snap.EndDate != "" {
		dates += " → " + snap.EndDate
	}
	parts = append(parts, formatter.Dim(dates))
	return strings.Join(parts, "  ")
}

func (v *editorView) renderRow(i int, li domain.CostLineItem) string {
	gap := strings.Repeat(" ", colGap)
	prefix := strings.Repeat(" ", cursorWidth)
	name := formatter.Truncate(li.CategoryName, nameWidth)
	if i == v.cursor {
		prefix = formatter.StyleAccent.Render("> ")
		name = formatter.StyleStrong.Render(name)
	}
	return prefix +
		formatter.PadRight(name, nameWidth) + gap +
		formatter.PadLeft(v.state.Money(li.BaseCost), moneyWidth) + gap +
		v.renderStepper(li) + gap +
		formatter.PadLeft(v.state.Money(li.MaterialCost), moneyWidth) + gap +
		formatter.PadLeft(v.state.Money(li.TotalCost), moneyWidth) + gap +
		formatter.Dim(formatter.Truncate(li.Particulars, 30))
}

// renderStepper draws "[-] nn [+]", highlighting the button being held.
func (v *editorView) renderStepper(li domain.CostLineItem) string {
	minus, plus := "[-]", "[+]"
	if c := v.steppers[li.CategoryID]; c != nil && c.Phase() != stepper.Idle {
		switch c.State().Direction {
		case stepper.Down:
			minus = formatter.StyleHeld.Render(minus)
		case stepper.Up:
			plus = formatter.StyleHeld.Render(plus)
		}
	}
	return fmt.Sprintf("%s %2d %s", minus, li.Quantity, plus)
}
