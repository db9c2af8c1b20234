package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absencehub/internal/validation"
)

func TestAbsenceCalculateDays(t *testing.T) {
	tests := []struct {
		name string
		a    Absence
		want float64
	}{
		{"single day", Absence{StartDate: "2025-01-01", EndDate: "2025-01-01"}, 1},
		{"week", Absence{StartDate: "2025-01-06", EndDate: "2025-01-10"}, 5},
		{"across DST change", Absence{StartDate: "2025-03-28", EndDate: "2025-04-02"}, 6},
		{"half day", Absence{StartDate: "2025-01-01", EndDate: "2025-01-01", IsHalfDay: true}, 0.5},
		{"broken dates", Absence{StartDate: "x", EndDate: "2025-01-01"}, 0},
		{"inverted", Absence{StartDate: "2025-01-02", EndDate: "2025-01-01"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.CalculateDays())
		})
	}
}

func TestAbsenceCovers(t *testing.T) {
	a := Absence{StartDate: "2025-01-30", EndDate: "2025-02-02"}
	assert.True(t, a.Covers("2025-01-30"))
	assert.True(t, a.Covers("2025-02-01"))
	assert.True(t, a.Covers("2025-02-02"))
	assert.False(t, a.Covers("2025-02-03"))
	assert.False(t, a.Covers("2025-01-29"))
}

func TestAbsenceFromDraft_ReconcilesHalfDay(t *testing.T) {
	a := AbsenceFromDraft(validation.Draft{
		ServiceAccount: "s.a.b",
		AbsenceType:    "Urlaub",
		StartDate:      "2025-06-10",
		IsHalfDay:      true,
	})
	assert.Equal(t, "2025-06-10", a.EndDate)
	assert.Equal(t, a.Draft().EndDate, a.EndDate)
}

func TestValuesScan(t *testing.T) {
	var v Values
	require.NoError(t, v.Scan(`{"a":1}`))
	assert.Equal(t, float64(1), v["a"])

	require.NoError(t, v.Scan([]byte(`{"b":"x"}`)))
	assert.Equal(t, "x", v["b"])

	require.NoError(t, v.Scan(nil))
	assert.Nil(t, v)

	assert.Error(t, v.Scan(42))
}

func TestValuesValue(t *testing.T) {
	var empty Values
	got, err := empty.Value()
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = Values{"k": "v"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `{"k":"v"}`, got)
}

func TestAbsenceTypeDisplayName(t *testing.T) {
	at := AbsenceType{Name: "Urlaub", NameDE: "Urlaub", NameEN: "Vacation"}
	assert.Equal(t, "Vacation", at.DisplayName("en"))
	assert.Equal(t, "Urlaub", at.DisplayName("de"))
	assert.Equal(t, "Urlaub", at.DisplayName("fr"))
}
