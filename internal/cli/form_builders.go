package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/charmbracelet/huh"
)

const notesCharLimit = 500

// dateInput returns a huh.Input for a YYYY-MM-DD plan date. A required
// input rejects blank values; an optional one accepts them as "no date".
func dateInput(title string, required bool, value *string) *huh.Input {
	validate := validateOptionalDate
	if required {
		validate = validateRequiredDate
	}
	return huh.NewInput().
		Title(title).
		Placeholder(domain.DateLayout).
		Value(value).
		Validate(validate)
}

// statusSelect offers every plan status by label, storing the raw value.
func statusSelect(value *string) *huh.Select[string] {
	options := make([]huh.Option[string], 0, len(domain.ValidPlanStatuses))
	for _, s := range domain.ValidPlanStatuses {
		options = append(options, huh.NewOption(s.Label(), string(s)))
	}
	return huh.NewSelect[string]().
		Title("Status").
		Options(options...).
		Value(value)
}

func notesText(value *string) *huh.Text {
	return huh.NewText().
		Title("Notes").
		CharLimit(notesCharLimit).
		Value(value)
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if err := domain.ValidateISODate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

func validateRequiredDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("a start date is required")
	}
	return validateOptionalDate(s)
}
