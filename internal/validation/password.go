package validation

import "unicode"

const MinPasswordLength = 8

// Failure reasons reported by IsValidPassword, in reporting order.
const (
	ReasonMinLength = "At least 8 characters"
	ReasonUpperCase = "At least one uppercase letter"
	ReasonLowerCase = "At least one lowercase letter"
	ReasonNumber    = "At least one number"
)

// PasswordValidation is the outcome of IsValidPassword. Each rule is reported
// on its own so a form can tick them off while the user types.
type PasswordValidation struct {
	Valid        bool
	Errors       []string
	HasMinLength bool
	HasUpperCase bool
	HasLowerCase bool
	HasNumber    bool
}

// IsValidPassword checks length (counted in characters, not bytes) and the
// presence of an uppercase letter, a lowercase letter and a digit.
func IsValidPassword(s string) PasswordValidation {
	var r PasswordValidation

	n := 0
	for _, c := range s {
		n++
		switch {
		case unicode.IsUpper(c):
			r.HasUpperCase = true
		case unicode.IsLower(c):
			r.HasLowerCase = true
		case unicode.IsDigit(c):
			r.HasNumber = true
		}
	}
	r.HasMinLength = n >= MinPasswordLength

	if !r.HasMinLength {
		r.Errors = append(r.Errors, ReasonMinLength)
	}
	if !r.HasUpperCase {
		r.Errors = append(r.Errors, ReasonUpperCase)
	}
	if !r.HasLowerCase {
		r.Errors = append(r.Errors, ReasonLowerCase)
	}
	if !r.HasNumber {
		r.Errors = append(r.Errors, ReasonNumber)
	}
	r.Valid = len(r.Errors) == 0

	return r
}

// DoPasswordsMatch is true only when both values are non-empty and equal.
func DoPasswordsMatch(password, confirm string) bool {
	return password != "" && confirm != "" && password == confirm
}
