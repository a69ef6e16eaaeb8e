package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dentplan/internal/catalog"
	"github.com/alexanderramin/dentplan/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// pickerView lists the categories not yet in the draft, filtered by a search
// box and capped at the display limit until the user asks for all of them.
type pickerView struct {
	state   *SharedState
	sel     catalog.Selection
	search  textinput.Model
	showAll bool
	cursor  int
}

func newPickerView(state *SharedState, sel catalog.Selection) *pickerView {
	ti := textinput.New()
	ti.Placeholder = "search treatments"
	ti.Prompt = "/ "
	ti.CharLimit = 60
	ti.Focus()
	return &pickerView{state: state, sel: sel, search: ti}
}

func (v *pickerView) ID() ViewID    { return ViewPicker }
func (v *pickerView) Title() string { return "Add treatment" }

func (v *pickerView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "show all")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *pickerView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *pickerView) page() catalog.Page {
	return v.state.Selector.Page(v.sel, v.search.Value(), v.showAll)
}

func (v *pickerView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}

	switch keyMsg.Type {
	case tea.KeyEsc:
		return v, popView()
	case tea.KeyEnter:
		p := v.page()
		if v.cursor < len(p.Items) {
			return v, completeWith(categoryPickedMsg{categoryID: p.Items[v.cursor].ID})
		}
		return v, nil
	case tea.KeyTab:
		if p := v.page(); p.HasMore {
			v.showAll = !v.showAll
			v.clampCursor()
		}
		return v, nil
	case tea.KeyUp:
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil
	case tea.KeyDown:
		if v.cursor < len(v.page().Items)-1 {
			v.cursor++
		}
		return v, nil
	}

	before := v.search.Value()
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(keyMsg)
	if v.search.Value() != before {
		v.cursor = 0
	}
	return v, cmd
}

func (v *pickerView) clampCursor() {
	if n := len(v.page().Items); v.cursor >= n {
		v.cursor = max(n-1, 0)
	}
}

func (v *pickerView) View() string {
	var b strings.Builder
	b.WriteString(v.search.View() + "\n\n")

	p := v.page()
	if p.Empty() {
		b.WriteString("  " + formatter.NoCategoriesMatch(strings.TrimSpace(v.search.Value())))
		return b.String()
	}

	gap := strings.Repeat(" ", colGap)
	for i, c := range p.Items {
		prefix := strings.Repeat(" ", cursorWidth)
		name := formatter.Truncate(c.Name, nameWidth)
		if i == v.cursor {
			prefix = formatter.StyleAccent.Render("> ")
			name = formatter.StyleStrong.Render(name)
		}
		b.WriteString(prefix +
			formatter.PadRight(name, nameWidth) + gap +
			formatter.PadLeft(v.state.Money(c.BaseCost), moneyWidth) + gap +
			formatter.Dim(formatter.Truncate(c.Description, 40)) + "\n")
	}

	switch {
	case p.HasMore && !p.ShowingAll:
		b.WriteString("\n" + formatter.Dim(fmt.Sprintf("  showing %d of %d, tab: show all (%d)", len(p.Items), p.Total, p.Total)))
	case p.HasMore:
		b.WriteString("\n" + formatter.Dim(fmt.Sprintf("  tab: show first %d", p.Limit)))
	}
	return strings.TrimRight(b.String(), "\n")
}
