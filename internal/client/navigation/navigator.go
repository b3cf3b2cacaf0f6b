// Package navigation holds the current screen of the app and the rules for
// moving between screens.
//
// The holder is single-slot: there is no history stack, and going "back" is
// an explicit transition to a named screen.
package navigation

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

type Screen int

const (
	Splash Screen = iota
	Login
	Register
	ForgotPassword
	ResetPasswordWithCode
	Onboarding
	Intro
	Home
)

var screenNames = [...]string{
	Splash:                "splash",
	Login:                 "login",
	Register:              "register",
	ForgotPassword:        "forgot-password",
	ResetPasswordWithCode: "reset-password",
	Onboarding:            "onboarding",
	Intro:                 "intro",
	Home:                  "home",
}

func (s Screen) String() string {
	if s < 0 || int(s) >= len(screenNames) {
		return fmt.Sprintf("screen(%d)", int(s))
	}
	return screenNames[s]
}

var (
	ErrInvalidTransition = errors.New("invalid screen transition")
	ErrNoSession         = errors.New("home requires an active session")
)

// allowed lists the permitted targets per source screen.
var allowed = map[Screen][]Screen{
	Splash:                {Login, Onboarding, Home},
	Login:                 {Register, ForgotPassword, Onboarding, Home},
	Register:              {Login, Onboarding},
	ForgotPassword:        {Login, ResetPasswordWithCode},
	ResetPasswordWithCode: {Login, ForgotPassword},
	Onboarding:            {Intro},
	Intro:                 {Home},
	Home:                  {Login},
}

// SessionChecker reports whether a user is signed in.
type SessionChecker interface {
	HasActiveSession() bool
}

// Navigator is safe for concurrent use; observers run synchronously after
// the transition and must not call back into the Navigator.
type Navigator struct {
	mu        sync.RWMutex
	current   Screen
	email     string
	session   SessionChecker
	observers []func(from, to Screen)
}

func New(session SessionChecker) *Navigator {
	return &Navigator{current: Splash, session: session}
}

func (n *Navigator) Current() Screen {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}

// Email is the address handed over to the reset screen, "" elsewhere.
func (n *Navigator) Email() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.email
}

// OnChange registers fn to be called after every successful transition.
func (n *Navigator) OnChange(fn func(from, to Screen)) {
	n.mu.Lock()
	n.observers = append(n.observers, fn)
	n.mu.Unlock()
}

// CanGo reports whether to is reachable from the current screen, ignoring
// the session guard.
func (n *Navigator) CanGo(to Screen) bool {
	return permitted(n.Current(), to)
}

func permitted(from, to Screen) bool {
	for _, s := range allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (n *Navigator) transition(to Screen, email string) error {
	n.mu.Lock()
	from := n.current
	if !permitted(from, to) {
		n.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	if to == Home && (n.session == nil || !n.session.HasActiveSession()) {
		n.mu.Unlock()
		return ErrNoSession
	}
	n.current = to
	n.email = email
	observers := slices.Clone(n.observers)
	n.mu.Unlock()

	for _, fn := range observers {
		fn(from, to)
	}
	return nil
}

// ResolveSplash leaves the splash screen for the destination the resolver
// picked.
func (n *Navigator) ResolveSplash(dest Screen) error {
	if n.Current() != Splash {
		return fmt.Errorf("%w: splash already resolved", ErrInvalidTransition)
	}
	return n.transition(dest, "")
}

func (n *Navigator) ToRegister() error       { return n.transition(Register, "") }
func (n *Navigator) ToLogin() error          { return n.transition(Login, "") }
func (n *Navigator) ToForgotPassword() error { return n.transition(ForgotPassword, "") }
func (n *Navigator) ToOnboarding() error     { return n.transition(Onboarding, "") }
func (n *Navigator) ToIntro() error          { return n.transition(Intro, "") }
func (n *Navigator) ToHome() error           { return n.transition(Home, "") }

// ToResetWithCode carries email over to the reset screen.
func (n *Navigator) ToResetWithCode(email string) error {
	return n.transition(ResetPasswordWithCode, email)
}

// Logout returns to Login from Home. Signing out is the caller's job.
func (n *Navigator) Logout() error {
	if n.Current() != Home {
		return fmt.Errorf("%w: logout outside home", ErrInvalidTransition)
	}
	return n.transition(Login, "")
}
