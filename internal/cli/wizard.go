package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/dentplan/internal/cli/formatter"
	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/alexanderramin/dentplan/internal/draft"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// dentplanHuhTheme returns a custom huh theme using the formatter palette.
func dentplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorAccent).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorAccent)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorOK)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorText)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorText).Background(formatter.ColorAccent).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorMuted).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorAccent)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorAccent)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorText)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorMuted)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorMuted)

	return t
}

// planDetails holds the scheduling fields edited in the details form.
type planDetails struct {
	Name      string
	PatientID string
	Status    string
	StartDate string
	EndDate   string
	Notes     string
}

func detailsFromDraft(d *draft.Draft) *planDetails {
	return &planDetails{
		Name:      d.Name(),
		PatientID: d.PatientID(),
		Status:    string(d.Status()),
		StartDate: d.StartDate(),
		EndDate:   d.EndDate(),
		Notes:     d.Notes(),
	}
}

// apply writes every field into d. Each setter runs even when an earlier
// one fails; the failures are joined.
func (p planDetails) apply(d *draft.Draft) error {
	errs := []error{
		d.SetName(strings.TrimSpace(p.Name)),
		d.SetPatientID(strings.TrimSpace(p.PatientID)),
		d.SetNotes(p.Notes),
		d.SetStartDate(strings.TrimSpace(p.StartDate)),
		d.SetEndDate(strings.TrimSpace(p.EndDate)),
	}
	status, err := domain.ParsePlanStatus(p.Status)
	if err == nil {
		err = d.SetStatus(status)
	}
	errs = append(errs, err)
	return errors.Join(errs...)
}

// planDetailsForm builds the two-page details form bound to values.
func planDetailsForm(values *planDetails) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Plan name").
				Placeholder("Restorative work").
				Value(&values.Name),
			huh.NewInput().
				Title("Patient ID").
				Value(&values.PatientID),
			statusSelect(&values.Status),
		),
		huh.NewGroup(
			dateInput("Start date", true, &values.StartDate),
			dateInput("End date (blank for none)", false, &values.EndDate),
			notesText(&values.Notes),
		),
	).WithTheme(dentplanHuhTheme()).WithShowHelp(false)
}
