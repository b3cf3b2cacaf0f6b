package validation

// FieldState drives the inline feedback shown next to a form field.
type FieldState int

const (
	FieldNone FieldState = iota
	FieldValidating
	FieldValid
	FieldInvalid
)

func (s FieldState) String() string {
	switch s {
	case FieldValidating:
		return "validating"
	case FieldValid:
		return "valid"
	case FieldInvalid:
		return "invalid"
	default:
		return "none"
	}
}

type FieldValidation struct {
	State       FieldState
	Message     string
	ShowMessage bool
}

// CheckEmailField returns the feedback for the e-mail field. Nothing is shown
// for an empty field and a half-typed address is reported as still validating.
func CheckEmailField(s string) FieldValidation {
	switch {
	case s == "":
		return FieldValidation{}
	case IsValidEmail(s):
		return FieldValidation{State: FieldValid}
	case !IsEmailComplete(s):
		return FieldValidation{State: FieldValidating}
	default:
		return FieldValidation{State: FieldInvalid, Message: "Invalid email format", ShowMessage: true}
	}
}

// CheckPasswordField returns the feedback for a new-password field; the
// message is the first unmet rule.
func CheckPasswordField(s string) FieldValidation {
	if s == "" {
		return FieldValidation{}
	}
	r := IsValidPassword(s)
	if r.Valid {
		return FieldValidation{State: FieldValid}
	}
	return FieldValidation{State: FieldInvalid, Message: r.Errors[0], ShowMessage: true}
}

// CheckConfirmField returns the feedback for a password confirmation field.
func CheckConfirmField(password, confirm string) FieldValidation {
	if confirm == "" {
		return FieldValidation{}
	}
	if DoPasswordsMatch(password, confirm) {
		return FieldValidation{State: FieldValid}
	}
	return FieldValidation{State: FieldInvalid, Message: "Passwords do not match", ShowMessage: true}
}
