package formatter

import (
	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Palette, named by role rather than hue.
var (
	ColorAccent = lipgloss.Color("#fe8019")
	ColorMuted  = lipgloss.Color("#928374")
	ColorText   = lipgloss.Color("#ebdbb2")
	ColorOK     = lipgloss.Color("#8ec07c")
	ColorError  = lipgloss.Color("#fb4934")
	ColorHeld   = lipgloss.Color("#fabd2f")
	ColorBrand  = lipgloss.Color("#d3869b")
	ColorInfo   = lipgloss.Color("#83a598")
)

var (
	StyleAccent = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	StyleMuted  = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleStrong = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleID     = lipgloss.NewStyle().Foreground(ColorOK)
	StyleError  = lipgloss.NewStyle().Foreground(ColorError)
	// StyleHeld marks the stepper button under a mouse hold.
	StyleHeld  = lipgloss.NewStyle().Foreground(ColorHeld).Bold(true)
	StyleBrand = lipgloss.NewStyle().Foreground(ColorBrand)
)

var statusPills = map[domain.PlanStatus]string{
	domain.PlanPending:    lipgloss.NewStyle().Foreground(ColorInfo).Render("○ Pending"),
	domain.PlanInProgress: lipgloss.NewStyle().Foreground(ColorOK).Render("● In progress"),
	domain.PlanCompleted:  StyleMuted.Render("✔ Completed"),
	domain.PlanCancelled:  StyleError.Render("✖ Cancelled"),
}

// StatusPill returns a colored indicator for a plan status.
func StatusPill(status domain.PlanStatus) string {
	if pill, ok := statusPills[status]; ok {
		return pill
	}
	return StyleMuted.Render(string(status))
}

// Dim renders secondary text.
func Dim(text string) string {
	return StyleMuted.Render(text)
}

// Bold renders emphasized text.
func Bold(text string) string {
	return StyleStrong.Render(text)
}
