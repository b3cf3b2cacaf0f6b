package cli

import (
	"context"

	"github.com/hifi-israel/sikacare/internal/common"
	"github.com/hifi-israel/sikacare/internal/validation"
)

var wipe = common.WipeByteArray

func (a *App) promptEmail() (string, error) {
	email, err := a.prompt("Enter email")
	if err != nil {
		return "", err
	}
	if !validation.IsValidEmail(email) {
		if fv := validation.CheckEmailField(email); fv.ShowMessage {
			return "", notice(fv.Message)
		}
		return "", notice("Invalid email format")
	}
	return email, nil
}

// promptNewPassword asks for a password and its confirmation and enforces
// the password rules.
func (a *App) promptNewPassword() (string, error) {
	password, err := a.promptPassword("Enter password")
	if err != nil {
		return "", err
	}
	if r := validation.IsValidPassword(password); !r.Valid {
		for _, reason := range r.Errors {
			printlnFn(" -", reason)
		}
		return "", notice("The password does not meet the requirements.")
	}

	confirm, err := a.promptPassword("Confirm password")
	if err != nil {
		return "", err
	}
	if !validation.DoPasswordsMatch(password, confirm) {
		return "", notice("Passwords do not match")
	}
	return password, nil
}

func (a *App) login(ctx context.Context, _ []string) error {
	email, err := a.promptEmail()
	if err != nil {
		return err
	}
	password, err := a.promptPassword("Enter password")
	if err != nil {
		return err
	}
	if password == "" {
		return notice("Password is required")
	}

	if err := a.auth.SignInWithEmailPassword(ctx, email, password); err != nil {
		a.logger.Info(ctx, "sign-in failed", "error", err)
		return err
	}
	printlnFn("Signed in as", email)
	return a.afterSignIn(ctx)
}

func (a *App) register(ctx context.Context, _ []string) error {
	email, err := a.promptEmail()
	if err != nil {
		return err
	}
	password, err := a.promptNewPassword()
	if err != nil {
		return err
	}

	if err := a.auth.SignUpWithEmailPassword(ctx, email, password); err != nil {
		a.logger.Info(ctx, "sign-up failed", "error", err)
		return err
	}

	if !a.auth.HasActiveSession() {
		printlnFn("Account created. Sign in to continue.")
		return a.move(ctx, a.nav.ToLogin)
	}
	printlnFn("Account created.")
	return a.move(ctx, a.nav.ToOnboarding)
}

func (a *App) googleSignIn(ctx context.Context, _ []string) error {
	if err := a.auth.SignInWithGoogle(ctx); err != nil {
		a.logger.Info(ctx, "google sign-in failed", "error", err)
		return err
	}
	email, _ := a.auth.CurrentUserEmail()
	printlnFn("Signed in with Google as", email)
	return a.afterSignIn(ctx)
}

// afterSignIn sends a freshly signed-in user to Home or Onboarding using the
// same rule as the splash screen. A profile read failure keeps the user
// where they are.
func (a *App) afterSignIn(ctx context.Context) error {
	profile, err := a.profiles.GetProfile(ctx)
	if err != nil {
		return err
	}
	if profile != nil && profile.IsOnboardingSeen {
		return a.move(ctx, a.nav.ToHome)
	}
	return a.move(ctx, a.nav.ToOnboarding)
}

func (a *App) sendReset(ctx context.Context, _ []string) error {
	email, err := a.promptEmail()
	if err != nil {
		return err
	}
	if err := a.auth.ResetPasswordForEmail(ctx, email); err != nil {
		return err
	}
	return a.move(ctx, func() error { return a.nav.ToResetWithCode(email) })
}

func (a *App) resendReset(ctx context.Context, _ []string) error {
	email := a.nav.Email()
	if err := a.auth.SendPasswordResetEmail(ctx, email); err != nil {
		return err
	}
	printlnFn("Code sent again to", email)
	return nil
}

// resetWithCode accepts any well-formed code; codes are not issued by the
// backend.
func (a *App) resetWithCode(ctx context.Context, _ []string) error {
	code, err := a.prompt("Enter the 6-digit code")
	if err != nil {
		return err
	}
	if !validation.IsValidVerificationCode(code) {
		return notice("The code must have 6 digits")
	}

	password, err := a.promptNewPassword()
	if err != nil {
		return err
	}
	if err := a.auth.UpdatePassword(ctx, password); err != nil {
		a.logger.Warn(ctx, "password update failed", "error", err)
		return notice("Could not update the password. Try again later.")
	}

	printlnFn("Password updated. You can sign in now.")
	return a.move(ctx, a.nav.ToLogin)
}
