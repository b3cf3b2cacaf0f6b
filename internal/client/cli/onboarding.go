package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hifi-israel/sikacare/internal/client/models"
	"github.com/hifi-israel/sikacare/internal/client/onboarding"
	"github.com/hifi-israel/sikacare/internal/validation"
)

type onboardingState struct {
	form         onboarding.Form
	verification *onboarding.EmailVerification
	avatars      []models.Avatar
	googleUser   bool
}

func (a *App) prepareOnboarding(ctx context.Context) {
	email, _ := a.auth.CurrentUserEmail()
	googleUser := a.auth.Provider() == "google"

	st := &onboardingState{
		verification: onboarding.NewEmailVerification(a.logger, email, googleUser, a.auth.IsEmailConfirmed()),
		avatars:      onboarding.PickAvatars(a.profiles.GetAvatars(ctx)),
		googleUser:   googleUser,
	}
	st.form.AvatarID = st.avatars[0].ID

	if p, err := a.profiles.GetProfile(ctx); err == nil && p != nil {
		if p.FullName != nil {
			st.form.FullName = *p.FullName
		}
		if p.Phone != nil {
			st.form.SetPhone(*p.Phone)
		}
	}
	a.onb = st

	if st.verification.Verified() {
		printlnFn("Email verified:", email)
	} else {
		printlnFn("Verify", email, "with 'verify', then 'code', or 'skip' for now.")
	}
}

func (a *App) currentOnboarding() *onboardingState {
	if a.onb == nil {
		a.prepareOnboarding(context.Background())
	}
	return a.onb
}

func (a *App) sendVerificationCode(ctx context.Context, _ []string) error {
	v := a.currentOnboarding().verification
	if v.Verified() {
		printlnFn("Email already verified.")
		return nil
	}
	if err := v.Send(ctx); err != nil {
		return err
	}
	printlnFn("Verification code sent.")
	return nil
}

func (a *App) enterVerificationCode(_ context.Context, args []string) error {
	var code string
	if len(args) > 0 {
		code = args[0]
	} else {
		var err error
		if code, err = a.prompt("Enter the 6-digit code"); err != nil {
			return err
		}
	}
	if err := a.currentOnboarding().verification.Verify(code); err != nil {
		return err
	}
	printlnFn("Email verified.")
	return nil
}

func (a *App) skipVerification(context.Context, []string) error {
	a.currentOnboarding().verification.Skip()
	printlnFn("Verification skipped.")
	return nil
}

func (a *App) listAvatars(context.Context, []string) error {
	st := a.currentOnboarding()
	for _, av := range st.avatars {
		mark := " "
		if av.ID == st.form.AvatarID {
			mark = "*"
		}
		printlnFn(fmt.Sprintf("%s %d  %s", mark, av.ID, av.Name))
	}
	return nil
}

// submitOnboarding collects the profile fields, checks them and stores the
// profile. Empty answers keep what was entered before.
func (a *App) submitOnboarding(ctx context.Context, _ []string) error {
	st := a.currentOnboarding()
	f := &st.form

	fields := []struct {
		prompt string
		set    func(string)
		get    func() string
	}{
		{"Full name", func(s string) { f.FullName = s }, func() string { return f.FullName }},
		{"Phone (8 digits)", f.SetPhone, func() string { return f.Phone }},
		{"Gender (M/F/O)", func(s string) { f.Gender = strings.ToUpper(s) }, func() string { return f.Gender }},
		{"Birthdate (YYYY-MM-DD)", func(s string) { f.Birthdate = s }, func() string { return f.Birthdate }},
	}
	for _, fld := range fields {
		prompt := fld.prompt
		if cur := fld.get(); cur != "" {
			prompt += " [" + cur + "]"
		}
		in, err := a.prompt(prompt)
		if err != nil {
			return err
		}
		if in != "" {
			fld.set(in)
		}
	}

	in, err := a.prompt(fmt.Sprintf("Avatar id [%d]", f.AvatarID))
	if err != nil {
		return err
	}
	if in != "" {
		id, convErr := strconv.Atoi(in)
		if _, ok := models.FindAvatar(st.avatars, id); convErr != nil || !ok {
			return notice("Choose one of the listed avatars")
		}
		f.AvatarID = id
	}

	if err := onboarding.CanComplete(f, a.now(), st.googleUser, st.verification.Verified()); err != nil {
		return err
	}

	birthdate, _ := validation.ParseBirthdate(f.Birthdate, a.now())
	err = a.profiles.FinishOnboarding(ctx, strings.TrimSpace(f.FullName), f.Phone, f.Gender,
		birthdate.Format(validation.BirthdateLayout), f.AvatarID)
	if err != nil {
		a.logger.Error(ctx, "saving profile failed", "error", err)
		return err
	}

	printlnFn("Profile saved.")
	return a.move(ctx, a.nav.ToIntro)
}

func (a *App) printSlide() {
	s := a.intro.Current()
	printlnFn(fmt.Sprintf("[%d/%d] %s", a.intro.Index()+1, len(a.intro.Slides()), s.Title))
	printlnFn(s.Description)
	if a.intro.IsLast() {
		printlnFn("Type 'done' to get started.")
	}
}

func (a *App) nextSlide(ctx context.Context, _ []string) error {
	if !a.intro.Next() {
		return a.finishIntro(ctx, nil)
	}
	a.printSlide()
	return nil
}

func (a *App) previousSlide(context.Context, []string) error {
	a.intro.Previous()
	a.printSlide()
	return nil
}

// finishIntro marks the intro as seen and opens Home. A failed update is
// logged and does not block the user.
func (a *App) finishIntro(ctx context.Context, _ []string) error {
	if err := a.profiles.UpdateOnboardingSeen(ctx, true); err != nil {
		a.logger.Warn(ctx, "marking onboarding as seen failed", "error", err)
	}
	return a.move(ctx, a.nav.ToHome)
}
