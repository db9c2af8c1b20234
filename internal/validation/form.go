package validation

import "unicode/utf8"

// MaxFullnameLength bounds employee_fullname, counted in characters.
const MaxFullnameLength = 200

// Result maps a field name to its failure. An empty Result is a valid form.
type Result map[string]*Error

// Valid reports whether no field failed.
func (r Result) Valid() bool {
	return len(r) == 0
}

// Keys returns the message key per failed field.
func (r Result) Keys() map[string]string {
	keys := make(map[string]string, len(r))
	for field, err := range r {
		keys[field] = err.Key
	}
	return keys
}

func (r Result) add(err error) {
	if err == nil {
		return
	}
	if verr, ok := err.(*Error); ok {
		r[verr.Field] = verr
	}
}

// ValidateFullname enforces the optional name length bound.
func ValidateFullname(value string) error {
	if utf8.RuneCountInString(value) > MaxFullnameLength {
		return newError(FieldEmployeeFullname, KindTooLong, KeyFullnameTooLong,
			"Employee fullname must be less than 200 characters")
	}
	return nil
}

// ValidateAbsenceForm runs every field rule against d and collects all
// failures. The draft is reconciled for half days first, so for a half-day
// draft only the start date is checked.
func ValidateAbsenceForm(d Draft, allowed []string) Result {
	d = ReconcileHalfDay(d)
	res := Result{}

	res.add(ValidateServiceAccount(d.ServiceAccount))

	if d.IsHalfDay {
		if err := validateDate(FieldStartDate, d.StartDate, KeyStartDateRequired, "Start date is required"); err != nil {
			res[err.Field] = err
		}
	} else {
		for _, err := range dateRangeErrors(d.StartDate, d.EndDate) {
			res[err.Field] = err
		}
	}

	res.add(ValidateAbsenceType(d.AbsenceType, allowed))
	res.add(ValidateFullname(d.EmployeeFullname))

	return res
}
