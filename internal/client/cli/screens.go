package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/hifi-israel/sikacare/internal/client/messages"
	"github.com/hifi-israel/sikacare/internal/client/navigation"
	"github.com/hifi-israel/sikacare/internal/client/onboarding"
	"github.com/hifi-israel/sikacare/internal/validation"
)

type command struct {
	name string
	run  func(ctx context.Context, args []string) error
}

// notice is an input problem reported to the user verbatim.
type notice string

func (n notice) Error() string { return string(n) }

func (a *App) commands() []command {
	switch a.nav.Current() {
	case navigation.Login:
		return []command{
			{"login", a.login},
			{"register", func(ctx context.Context, _ []string) error { return a.move(ctx, a.nav.ToRegister) }},
			{"forgot", func(ctx context.Context, _ []string) error { return a.move(ctx, a.nav.ToForgotPassword) }},
			{"google", a.googleSignIn},
		}
	case navigation.Register:
		return []command{
			{"submit", a.register},
			{"login", func(ctx context.Context, _ []string) error { return a.move(ctx, a.nav.ToLogin) }},
		}
	case navigation.ForgotPassword:
		return []command{
			{"send", a.sendReset},
			{"login", func(ctx context.Context, _ []string) error { return a.move(ctx, a.nav.ToLogin) }},
		}
	case navigation.ResetPasswordWithCode:
		return []command{
			{"continue", a.resetWithCode},
			{"resend", a.resendReset},
			{"back", func(ctx context.Context, _ []string) error { return a.move(ctx, a.nav.ToForgotPassword) }},
		}
	case navigation.Onboarding:
		return []command{
			{"verify", a.sendVerificationCode},
			{"code", a.enterVerificationCode},
			{"skip", a.skipVerification},
			{"avatars", a.listAvatars},
			{"submit", a.submitOnboarding},
		}
	case navigation.Intro:
		return []command{
			{"next", a.nextSlide},
			{"prev", a.previousSlide},
			{"done", a.finishIntro},
		}
	case navigation.Home:
		return []command{
			{"profile", a.showProfile},
			{"logout", a.logout},
		}
	}
	return nil
}

func (a *App) screen() navigation.Screen {
	return a.nav.Current()
}

func (a *App) help() string {
	cmds := a.commands()
	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.name)
	}
	return strings.Join(names, ", ")
}

func (a *App) dispatch(ctx context.Context, name string, args []string) error {
	for _, c := range a.commands() {
		if c.name == name {
			return c.run(ctx, args)
		}
	}
	return errUnknownCommand
}

// move performs a navigator transition and then runs the entry step of the
// new screen.
func (a *App) move(ctx context.Context, transition func() error) error {
	if err := transition(); err != nil {
		return err
	}
	a.enter(ctx)
	return nil
}

func (a *App) enter(ctx context.Context) {
	current := a.nav.Current()
	printlnFn("==", screenTitle(current), "==")

	switch current {
	case navigation.Login:
		a.onb = nil
	case navigation.ResetPasswordWithCode:
		printlnFn("We sent a verification code to", a.nav.Email())
	case navigation.Onboarding:
		a.prepareOnboarding(ctx)
	case navigation.Intro:
		a.intro = onboarding.Intro{}
		a.printSlide()
	case navigation.Home:
		_ = a.showProfile(ctx, nil)
	}
}

func screenTitle(s navigation.Screen) string {
	switch s {
	case navigation.Login:
		return "Sign in"
	case navigation.Register:
		return "Create account"
	case navigation.ForgotPassword:
		return "Forgot password"
	case navigation.ResetPasswordWithCode:
		return "Reset password"
	case navigation.Onboarding:
		return "Your profile"
	case navigation.Intro:
		return "Welcome"
	case navigation.Home:
		return "Home"
	}
	return s.String()
}

// userMessage is the text shown for a failed command.
func userMessage(err error) string {
	var n notice
	var p onboarding.Problem
	switch {
	case errors.As(err, &n):
		return n.Error()
	case errors.As(err, &p):
		return p.Error()
	case errors.Is(err, validation.ErrBirthdateFormat), errors.Is(err, validation.ErrBirthdateFuture):
		return "Invalid birthdate: " + err.Error()
	case errors.Is(err, navigation.ErrInvalidTransition), errors.Is(err, navigation.ErrNoSession):
		return "That is not possible from here."
	}
	return messages.ForError(err)
}

func (a *App) prompt(text string) (string, error) {
	return getSimpleText(a.reader, text, os.Stdout)
}

// promptPassword reads a password; the terminal buffer is wiped before
// returning.
func (a *App) promptPassword(text string) (string, error) {
	pw, err := getPassword(text, os.Stdout)
	if err != nil {
		return "", err
	}
	s := string(pw)
	wipe(pw)
	return s, nil
}
