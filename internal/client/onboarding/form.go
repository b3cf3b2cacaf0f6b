// Package onboarding holds the state of the onboarding and intro screens:
// the profile form, the simulated e-mail verification, the avatar choice and
// the intro slides.
package onboarding

import (
	"strings"
	"time"

	"github.com/hifi-israel/sikacare/internal/client/models"
	"github.com/hifi-israel/sikacare/internal/validation"
)

// Problem is a validation failure whose text is shown to the user as is.
type Problem string

func (p Problem) Error() string { return string(p) }

const (
	ErrFullNameRequired  Problem = "Full name is required"
	ErrPhoneRequired     Problem = "Phone number is required"
	ErrPhoneLength       Problem = "Phone number must have exactly 8 digits"
	ErrGenderRequired    Problem = "Please select your gender"
	ErrGenderInvalid     Problem = "Gender must be M, F or O"
	ErrBirthdateRequired Problem = "Please enter your birthdate"
	ErrNotVerified       Problem = "Please verify your email first"
)

// Form is the profile data collected during onboarding.
type Form struct {
	FullName  string
	Phone     string
	Gender    string
	Birthdate string
	AvatarID  int
}

// SetPhone stores the filtered form of raw: digits only, at most 8.
func (f *Form) SetPhone(raw string) {
	f.Phone = validation.FilterPhoneInput(raw)
}

// Validate returns the first problem in field order, or nil.
func (f *Form) Validate(now time.Time) error {
	switch {
	case strings.TrimSpace(f.FullName) == "":
		return ErrFullNameRequired
	case f.Phone == "":
		return ErrPhoneRequired
	case !validation.IsValidPhone(f.Phone):
		return ErrPhoneLength
	case f.Gender == "":
		return ErrGenderRequired
	case !validation.IsValidGender(f.Gender):
		return ErrGenderInvalid
	case strings.TrimSpace(f.Birthdate) == "":
		return ErrBirthdateRequired
	}
	if _, err := validation.ParseBirthdate(f.Birthdate, now); err != nil {
		return err
	}
	return nil
}

// CanComplete is the rule for enabling the final submit: a valid form and
// either a Google account or a verified e-mail.
func CanComplete(f *Form, now time.Time, googleUser, emailVerified bool) error {
	if err := f.Validate(now); err != nil {
		return err
	}
	if !googleUser && !emailVerified {
		return ErrNotVerified
	}
	return nil
}

// PickAvatars returns fetched, or the fallback catalog when it is empty.
func PickAvatars(fetched []models.Avatar) []models.Avatar {
	if len(fetched) == 0 {
		return models.FallbackAvatars()
	}
	return fetched
}
