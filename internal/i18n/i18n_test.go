package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"absencehub/internal/validation"
)

func TestT(t *testing.T) {
	assert.Equal(t, "Startdatum erforderlich", T(German, "error.startDateRequired"))
	assert.Equal(t, "Start date is required", T(English, "error.startDateRequired"))
	assert.Equal(t, "Start date is required", T("fr", "error.startDateRequired"))
	assert.Equal(t, "no.such.key", T(German, "no.such.key"))
}

func TestTablesCoverValidationKeys(t *testing.T) {
	keys := []string{
		validation.KeyServiceAccountRequired,
		validation.KeyServiceAccountFormat,
		validation.KeyServiceAccountStructure,
		validation.KeyStartDateRequired,
		validation.KeyEndDateRequired,
		validation.KeyDateFormatInvalid,
		validation.KeyDateRangeInvalid,
		validation.KeyAbsenceTypeRequired,
		validation.KeyAbsenceTypeInvalid,
		validation.KeyFullnameTooLong,
		validation.KeyGeneric,
	}
	for _, lang := range Languages() {
		for _, k := range keys {
			_, ok := translations[lang][k]
			assert.True(t, ok, "%s missing %s", lang, k)
		}
	}
}

func TestGermanHasEveryEnglishKey(t *testing.T) {
	for k := range translations[English] {
		_, ok := translations[German][k]
		assert.True(t, ok, k)
	}
}

func TestNegotiate(t *testing.T) {
	assert.Equal(t, German, Negotiate("de", "", English))
	assert.Equal(t, German, Negotiate("", "fr-FR;q=0.9, de-AT;q=0.8", English))
	assert.Equal(t, English, Negotiate("xx", "fr", English))
	assert.Equal(t, German, Negotiate("", "", German))
	assert.Equal(t, English, Negotiate("", "", "pl"))
}

func TestNegotiateHonoursWeights(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"en;q=0.1, de;q=0.9", German},
		{"de;q=0.5, en", English},
		{"de, en", German},
		{"en;q=0.8, de;q=0.8", English},
		{"de;q=0, en;q=0.2", English},
		{"de;q=abc, en;q=0.2", English},
		{"fr;q=1, de-CH;q=0.3, en;q=0.2", German},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Negotiate("", tt.header, "pl"), tt.header)
	}
}

func TestTable(t *testing.T) {
	tbl := Table(German)
	assert.Equal(t, "Abwesenheitstyp", tbl["field.absenceType"])

	tbl["field.absenceType"] = "changed"
	assert.Equal(t, "Abwesenheitstyp", T(German, "field.absenceType"))
}

func TestLanguages(t *testing.T) {
	assert.Equal(t, []string{"de", "en"}, Languages())
}
