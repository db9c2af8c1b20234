package validation

import "strings"

const serviceAccountPrefix = "s."

// ValidateServiceAccount checks the s.<first>.<last>[.<more>] convention.
func ValidateServiceAccount(value string) error {
	if value == "" {
		return newError(FieldServiceAccount, KindRequired, KeyServiceAccountRequired,
			"Service account is required")
	}

	if !strings.HasPrefix(value, serviceAccountPrefix) {
		return newError(FieldServiceAccount, KindFormat, KeyServiceAccountFormat,
			"Service account must start with 's.'")
	}

	if len(strings.Split(value, ".")) < 3 {
		return newError(FieldServiceAccount, KindStructure, KeyServiceAccountStructure,
			"Service account must follow format: s.firstname.lastname")
	}

	return nil
}
