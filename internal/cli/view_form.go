package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// formView hosts a huh.Form on the view stack. When the form completes,
// the view pops itself and submit's message reaches the view underneath.
// Escape discards the form's values.
type formView struct {
	state     *SharedState
	form      *huh.Form
	title     string
	submit    func() tea.Msg
	submitted bool
}

func newFormView(state *SharedState, title string, form *huh.Form, submit func() tea.Msg) *formView {
	if state.Width > 0 {
		form = form.WithWidth(min(state.Width, formMaxWidth))
	}
	return &formView{state: state, form: form, title: title, submit: submit}
}

// formMaxWidth keeps long notes readable on wide terminals.
const formMaxWidth = 80

func (v *formView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *formView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return v, popView()
		}
	case tea.WindowSizeMsg:
		v.form = v.form.WithWidth(min(msg.Width, formMaxWidth))
	}
	if v.submitted {
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		v.submitted = true
		return v, tea.Batch(cmd, completeWith(v.submit()))
	}
	return v, cmd
}

func (v *formView) View() string {
	return v.form.View()
}

func (v *formView) ID() ViewID    { return ViewForm }
func (v *formView) Title() string { return v.title }
func (v *formView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "back")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard")),
	}
}
