package cli

import (
	"github.com/alexanderramin/dentplan/internal/cli/formatter"
	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/alexanderramin/dentplan/internal/draft"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// amountView edits one field of one line item. The raw text goes to the
// ledger untouched; coercion happens there.
type amountView struct {
	input      textinput.Model
	categoryID string
	category   string
	field      draft.Field
}

func newAmountView(li domain.CostLineItem, field draft.Field, current string) *amountView {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 120
	ti.SetValue(current)
	ti.Focus()
	return &amountView{
		input:      ti,
		categoryID: li.CategoryID,
		category:   li.CategoryName,
		field:      field,
	}
}

func (v *amountView) ID() ViewID    { return ViewAmount }
func (v *amountView) Title() string { return fieldLabel(v.field) }

func (v *amountView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *amountView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *amountView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			return v, popView()
		case tea.KeyEnter:
			return v, completeWith(fieldEditedMsg{
				categoryID: v.categoryID,
				field:      v.field,
				raw:        v.input.Value(),
			})
		}
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *amountView) View() string {
	hint := "Non-numeric or negative amounts count as 0."
	switch v.field {
	case draft.FieldQuantity:
		hint = "Quantity is kept between 1 and 20."
	case draft.FieldParticulars:
		hint = "Free text shown on the cost sheet."
	}
	return formatter.Bold(fieldLabel(v.field)) + formatter.Dim(" for ") + v.category + "\n\n" +
		v.input.View() + "\n\n" +
		formatter.Dim(hint)
}

func fieldLabel(f draft.Field) string {
	switch f {
	case draft.FieldBaseCost:
		return "Base cost"
	case draft.FieldQuantity:
		return "Quantity"
	case draft.FieldMaterialCost:
		return "Material cost"
	case draft.FieldParticulars:
		return "Particulars"
	}
	return f.String()
}
