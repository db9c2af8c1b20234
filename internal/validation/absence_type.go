package validation

import "slices"

// DefaultAbsenceTypes is used when the configured list cannot be loaded.
var DefaultAbsenceTypes = []string{"Urlaub", "Krankheit", "Home Office", "Sonstige"}

// ValidateAbsenceType checks that value is one of allowed. A nil allowed
// list means the configured types are unavailable and the defaults apply.
func ValidateAbsenceType(value string, allowed []string) error {
	if value == "" {
		return newError(FieldAbsenceType, KindRequired, KeyAbsenceTypeRequired, "Absence type is required")
	}

	if allowed == nil {
		allowed = DefaultAbsenceTypes
	}
	if !slices.Contains(allowed, value) {
		return newError(FieldAbsenceType, KindInvalidMember, KeyAbsenceTypeInvalid, "Invalid absence type")
	}

	return nil
}
