package validation

import "time"

// DateLayout is the only accepted calendar date format.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date in UTC so comparisons never depend
// on the local timezone.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// ValidateDateRange checks presence, then format, then ordering of a date
// pair and returns the first failure. Equal dates are a valid single day.
func ValidateDateRange(start, end string) error {
	if start == "" {
		return newError(FieldStartDate, KindRequired, KeyStartDateRequired, "Start date is required")
	}
	if end == "" {
		return newError(FieldEndDate, KindRequired, KeyEndDateRequired, "End date is required")
	}
	if errs := dateRangeErrors(start, end); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// dateRangeErrors reports every problem of the pair, one per field at most.
// Ordering is only checked once both sides parse.
func dateRangeErrors(start, end string) []*Error {
	var errs []*Error

	startErr := validateDate(FieldStartDate, start, KeyStartDateRequired, "Start date is required")
	if startErr != nil {
		errs = append(errs, startErr)
	}
	endErr := validateDate(FieldEndDate, end, KeyEndDateRequired, "End date is required")
	if endErr != nil {
		errs = append(errs, endErr)
	}
	if startErr != nil || endErr != nil {
		return errs
	}

	// Both parsed, so lexicographic order of the ISO strings is calendar order.
	if end < start {
		errs = append(errs, newError(FieldEndDate, KindOrder, KeyDateRangeInvalid,
			"End date cannot be before start date"))
	}

	return errs
}

func validateDate(field, value, requiredKey, requiredMsg string) *Error {
	if value == "" {
		return newError(field, KindRequired, requiredKey, requiredMsg)
	}
	if _, err := ParseDate(value); err != nil {
		return newError(field, KindInvalidFormat, KeyDateFormatInvalid, "Invalid date format")
	}
	return nil
}
