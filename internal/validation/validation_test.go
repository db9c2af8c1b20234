package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateServiceAccount(t *testing.T) {
	tests := []struct {
		name  string
		value string
		kind  Kind
	}{
		{"empty", "", KindRequired},
		{"missing prefix", "invalid.account", KindFormat},
		{"upper case prefix", "S.john.doe", KindFormat},
		{"prefix only", "s.", KindStructure},
		{"two segments", "s.john", KindStructure},
		{"three segments", "s.john.doe", ""},
		{"more segments", "s.john.van.doe", ""},
		{"empty segments still count", "s..", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateServiceAccount(tt.value)
			if tt.kind == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}
}

func TestValidateServiceAccount_NoPrefixAlwaysFormat(t *testing.T) {
	for _, v := range []string{"x.a.b", "john.doe.x", "sa.b.c", ".s.a.b", "s"} {
		assert.Equal(t, KindFormat, KindOf(ValidateServiceAccount(v)), v)
	}
}

func TestValidateDateRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		kind       Kind
		field      string
	}{
		{"missing start", "", "2025-01-02", KindRequired, FieldStartDate},
		{"missing both reports start", "", "", KindRequired, FieldStartDate},
		{"missing end", "2025-01-02", "", KindRequired, FieldEndDate},
		{"bad start", "2025-13-01", "2025-01-02", KindInvalidFormat, FieldStartDate},
		{"bad end", "2025-01-01", "02.01.2025", KindInvalidFormat, FieldEndDate},
		{"bad start, missing end", "garbage", "", KindRequired, FieldEndDate},
		{"end before start", "2025-01-10", "2025-01-09", KindOrder, FieldEndDate},
		{"end before start across years", "2025-01-01", "2024-12-31", KindOrder, FieldEndDate},
		{"single day", "2025-06-10", "2025-06-10", "", ""},
		{"range", "2025-06-10", "2025-06-20", "", ""},
		{"leap day", "2024-02-29", "2024-03-01", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDateRange(tt.start, tt.end)
			if tt.kind == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.kind, verr.Kind)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateDateRange_NotALeapYear(t *testing.T) {
	assert.Equal(t, KindInvalidFormat, KindOf(ValidateDateRange("2025-02-29", "2025-03-01")))
}

func TestValidateAbsenceType(t *testing.T) {
	allowed := []string{"Urlaub", "Elternzeit"}

	assert.Equal(t, KindRequired, KindOf(ValidateAbsenceType("", allowed)))
	assert.Equal(t, KindInvalidMember, KindOf(ValidateAbsenceType("Krankheit", allowed)))
	assert.NoError(t, ValidateAbsenceType("Elternzeit", allowed))

	// nil falls back to the default set
	assert.NoError(t, ValidateAbsenceType("Krankheit", nil))
	assert.Equal(t, KindInvalidMember, KindOf(ValidateAbsenceType("Elternzeit", nil)))

	// an explicitly empty list allows nothing
	assert.Equal(t, KindInvalidMember, KindOf(ValidateAbsenceType("Urlaub", []string{})))
}

func TestValidateFullname(t *testing.T) {
	assert.NoError(t, ValidateFullname(""))
	assert.NoError(t, ValidateFullname(strings.Repeat("a", 200)))
	assert.NoError(t, ValidateFullname(strings.Repeat("ü", 200)))
	assert.Equal(t, KindTooLong, KindOf(ValidateFullname(strings.Repeat("a", 201))))
}

func TestKindOf_NonValidationError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, Kind(""), KindOf(assert.AnError))
}
