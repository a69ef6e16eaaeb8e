package cli

import (
	"testing"

	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/alexanderramin/dentplan/internal/draft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateValidators(t *testing.T) {
	assert.NoError(t, validateOptionalDate(""))
	assert.NoError(t, validateOptionalDate(" 2026-03-01 "))
	assert.EqualError(t, validateOptionalDate("01/03/2026"), "use YYYY-MM-DD format")

	assert.EqualError(t, validateRequiredDate("  "), "a start date is required")
	assert.NoError(t, validateRequiredDate("2026-03-01"))
	assert.Error(t, validateRequiredDate("2026-02-30"))
}

func TestPlanDetails_ApplyJoinsErrors(t *testing.T) {
	d := draft.New(nil)
	details := detailsFromDraft(d)
	details.Name = "  Crown work  "
	details.StartDate = "not a date"
	details.Status = "bogus"

	err := details.apply(d)
	require.Error(t, err)
	assert.ErrorIs(t, err, draft.ErrInvalidDate)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Equal(t, "Crown work", d.Name(), "valid fields still apply")
}
