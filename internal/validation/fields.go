package validation

import (
	"errors"
	"strings"
	"time"
)

const (
	PhoneLength            = 8
	VerificationCodeLength = 6
	BirthdateLayout        = "2006-01-02"
)

// Gender codes stored in the profile.
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

var (
	ErrBirthdateFormat = errors.New("birthdate must be YYYY-MM-DD")
	ErrBirthdateFuture = errors.New("birthdate is in the future")
)

// FilterPhoneInput is applied to every keystroke of the phone field: it drops
// anything that is not an ASCII digit and keeps at most PhoneLength digits.
func FilterPhoneInput(s string) string {
	var b strings.Builder
	for _, c := range s {
		if b.Len() == PhoneLength {
			break
		}
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// IsValidPhone is true for exactly PhoneLength digits.
func IsValidPhone(s string) bool {
	return len(s) == PhoneLength && allDigits(s)
}

// IsValidVerificationCode is true for exactly VerificationCodeLength digits.
func IsValidVerificationCode(s string) bool {
	return len(s) == VerificationCodeLength && allDigits(s)
}

func IsValidGender(s string) bool {
	switch s {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// ParseBirthdate parses a YYYY-MM-DD date and rejects dates after now.
func ParseBirthdate(s string, now time.Time) (time.Time, error) {
	d, err := time.Parse(BirthdateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrBirthdateFormat
	}
	if d.After(now) {
		return time.Time{}, ErrBirthdateFuture
	}
	return d, nil
}
