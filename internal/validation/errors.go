// Package validation holds the field rules for absence drafts. Every function
// here is pure: no I/O, no shared state, safe to call on every keystroke.
package validation

import "errors"

// Kind classifies a validation failure.
type Kind string

const (
	KindRequired          Kind = "required"
	KindFormat            Kind = "format"
	KindStructure         Kind = "structure"
	KindInvalidFormat     Kind = "invalid_format"
	KindOrder             Kind = "order"
	KindInvalidMember     Kind = "invalid_member"
	KindTooLong           Kind = "too_long"
	KindUndecodableSignal Kind = "undecodable_signal"
)

// Field names used as keys in Result.
const (
	FieldServiceAccount   = "service_account"
	FieldEmployeeFullname = "employee_fullname"
	FieldAbsenceType      = "absence_type"
	FieldStartDate        = "start_date"
	FieldEndDate          = "end_date"
)

// Message keys understood by the i18n tables.
const (
	KeyServiceAccountRequired  = "error.serviceAccountRequired"
	KeyServiceAccountFormat    = "error.serviceAccountFormat"
	KeyServiceAccountStructure = "error.serviceAccountStructure"
	KeyStartDateRequired       = "error.startDateRequired"
	KeyEndDateRequired         = "error.endDateRequired"
	KeyDateFormatInvalid       = "error.dateFormatInvalid"
	KeyDateRangeInvalid        = "error.dateRangeInvalid"
	KeyAbsenceTypeRequired     = "error.absenceTypeRequired"
	KeyAbsenceTypeInvalid      = "error.absenceTypeInvalid"
	KeyFullnameTooLong         = "error.fullnameTooLong"
	KeyGeneric                 = "error.generic"
)

// Error is a single field failure.
type Error struct {
	Field string
	Kind  Kind
	Key   string
	Msg   string
}

func (e *Error) Error() string {
	return e.Msg
}

func newError(field string, kind Kind, key, msg string) *Error {
	return &Error{Field: field, Kind: kind, Key: key, Msg: msg}
}

// KindOf returns the Kind of err, or "" when err is not a validation error.
func KindOf(err error) Kind {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Kind
	}
	return ""
}
