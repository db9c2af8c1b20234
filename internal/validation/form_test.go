package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() Draft {
	return Draft{
		ServiceAccount:   "s.john.doe",
		EmployeeFullname: "John Doe",
		AbsenceType:      "Urlaub",
		StartDate:        "2025-06-10",
		EndDate:          "2025-06-14",
	}
}

func TestValidateAbsenceForm_Valid(t *testing.T) {
	res := ValidateAbsenceForm(validDraft(), nil)
	assert.True(t, res.Valid())
	assert.Empty(t, res)
}

func TestValidateAbsenceForm_ReportsAllFieldsAtOnce(t *testing.T) {
	d := Draft{ServiceAccount: "invalid.account"}

	res := ValidateAbsenceForm(d, nil)

	require.Len(t, res, 4)
	assert.Equal(t, KindFormat, res[FieldServiceAccount].Kind)
	assert.Equal(t, KindRequired, res[FieldAbsenceType].Kind)
	assert.Equal(t, KindRequired, res[FieldStartDate].Kind)
	assert.Equal(t, KindRequired, res[FieldEndDate].Kind)
	assert.False(t, res.Valid())
}

func TestValidateAbsenceForm_HalfDayWithoutEndDate(t *testing.T) {
	d := Draft{
		ServiceAccount: "s.jane.roe",
		AbsenceType:    "Home Office",
		StartDate:      "2025-06-10",
		IsHalfDay:      true,
	}

	d = ReconcileHalfDay(d)
	assert.Equal(t, "2025-06-10", d.EndDate)

	res := ValidateAbsenceForm(d, nil)
	assert.NotContains(t, res, FieldStartDate)
	assert.NotContains(t, res, FieldEndDate)
	assert.True(t, res.Valid())
}

func TestValidateAbsenceForm_HalfDayIgnoresStaleEndDate(t *testing.T) {
	d := validDraft()
	d.IsHalfDay = true
	d.EndDate = "2020-01-01"

	assert.True(t, ValidateAbsenceForm(d, nil).Valid())
}

func TestValidateAbsenceForm_HalfDayStillNeedsStart(t *testing.T) {
	d := validDraft()
	d.IsHalfDay = true
	d.StartDate = ""

	res := ValidateAbsenceForm(d, nil)
	require.Len(t, res, 1)
	assert.Equal(t, KindRequired, res[FieldStartDate].Kind)
}

func TestValidateAbsenceForm_OrderError(t *testing.T) {
	d := validDraft()
	d.EndDate = "2025-06-01"

	res := ValidateAbsenceForm(d, nil)
	require.Len(t, res, 1)
	assert.Equal(t, KindOrder, res[FieldEndDate].Kind)
	assert.Equal(t, KeyDateRangeInvalid, res.Keys()[FieldEndDate])
}

func TestValidateAbsenceForm_TooLongName(t *testing.T) {
	d := validDraft()
	d.EmployeeFullname = strings.Repeat("x", 201)

	res := ValidateAbsenceForm(d, nil)
	require.Len(t, res, 1)
	assert.Equal(t, KindTooLong, res[FieldEmployeeFullname].Kind)
}

func TestValidateAbsenceForm_UsesAllowedTypes(t *testing.T) {
	d := validDraft()
	d.AbsenceType = "Fortbildung"

	assert.False(t, ValidateAbsenceForm(d, nil).Valid())
	assert.True(t, ValidateAbsenceForm(d, []string{"Fortbildung"}).Valid())
}

// The aggregate is valid exactly when every individual rule passes.
func TestValidateAbsenceForm_MatchesIndividualRules(t *testing.T) {
	drafts := []Draft{
		validDraft(),
		{ServiceAccount: "s.a", AbsenceType: "Urlaub", StartDate: "2025-01-01", EndDate: "2025-01-01"},
		{ServiceAccount: "s.a.b", AbsenceType: "Nope", StartDate: "2025-01-01", EndDate: "2025-01-02"},
		{ServiceAccount: "s.a.b", AbsenceType: "Urlaub", StartDate: "2025-01-03", EndDate: "2025-01-02"},
		{ServiceAccount: "s.a.b", AbsenceType: "Urlaub", StartDate: "2025-01-03", IsHalfDay: true},
		{ServiceAccount: "s.a.b", AbsenceType: "Sonstige", StartDate: "bad", EndDate: "2025-01-02"},
	}

	for _, d := range drafts {
		r := ReconcileHalfDay(d)
		individual := ValidateServiceAccount(r.ServiceAccount) == nil &&
			ValidateDateRange(r.StartDate, r.EndDate) == nil &&
			ValidateAbsenceType(r.AbsenceType, nil) == nil &&
			ValidateFullname(r.EmployeeFullname) == nil

		assert.Equal(t, individual, ValidateAbsenceForm(d, nil).Valid(), "%+v", d)
	}
}
