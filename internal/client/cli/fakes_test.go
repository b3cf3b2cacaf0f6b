package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/hifi-israel/sikacare/internal/client/models"
	"github.com/hifi-israel/sikacare/internal/client/navigation"
	"github.com/hifi-israel/sikacare/internal/logging"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

type fakeAuth struct {
	signedIn  bool
	email     string
	provider  string
	confirmed bool

	signInErr  error
	signUpErr  error
	signUpSess bool
	resetErr   error
	updateErr  error
	googleErr  error

	calls    []string
	password string
}

func (f *fakeAuth) LoadFromStorage(context.Context) error { return nil }
func (f *fakeAuth) HasActiveSession() bool                { return f.signedIn }
func (f *fakeAuth) CurrentUserEmail() (string, bool)      { return f.email, f.signedIn }
func (f *fakeAuth) CurrentUserID() (string, bool)         { return "user-1", f.signedIn }
func (f *fakeAuth) IsEmailConfirmed() bool                { return f.confirmed }
func (f *fakeAuth) AccessToken() string                   { return "" }
func (f *fakeAuth) Provider() string                      { return f.provider }

func (f *fakeAuth) SignInWithEmailPassword(_ context.Context, email, password string) error {
	f.calls = append(f.calls, "signin:"+email)
	f.password = password
	if f.signInErr != nil {
		return f.signInErr
	}
	f.signedIn, f.email, f.provider = true, email, "email"
	return nil
}

func (f *fakeAuth) SignUpWithEmailPassword(_ context.Context, email, password string) error {
	f.calls = append(f.calls, "signup:"+email)
	f.password = password
	if f.signUpErr != nil {
		return f.signUpErr
	}
	if f.signUpSess {
		f.signedIn, f.email, f.provider = true, email, "email"
	}
	return nil
}

func (f *fakeAuth) ResetPasswordForEmail(_ context.Context, email string) error {
	f.calls = append(f.calls, "reset:"+email)
	return f.resetErr
}

func (f *fakeAuth) SendPasswordResetEmail(_ context.Context, email string) error {
	f.calls = append(f.calls, "resend:"+email)
	return f.resetErr
}

func (f *fakeAuth) UpdatePassword(_ context.Context, password string) error {
	f.calls = append(f.calls, "update")
	f.password = password
	return f.updateErr
}

func (f *fakeAuth) SignInWithGoogle(context.Context) error {
	f.calls = append(f.calls, "google")
	if f.googleErr != nil {
		return f.googleErr
	}
	f.signedIn, f.email, f.provider = true, "g@example.com", "google"
	return nil
}

func (f *fakeAuth) SignOut(context.Context) error {
	f.calls = append(f.calls, "signout")
	f.signedIn = false
	return nil
}

func (f *fakeAuth) Ping(context.Context) error  { return nil }
func (f *fakeAuth) Close(context.Context) error { return nil }

type finishCall struct {
	fullName, phone, gender, birthdate string
	avatarID                           int
}

type fakeProfiles struct {
	profile    *models.Profile
	profileErr error
	avatars    []models.Avatar
	finishErr  error
	seenErr    error

	finished *finishCall
	seen     []bool
}

func (f *fakeProfiles) GetProfile(context.Context) (*models.Profile, error) {
	return f.profile, f.profileErr
}

func (f *fakeProfiles) FinishOnboarding(_ context.Context, fullName, phone, gender, birthdate string, avatarID int) error {
	if f.finishErr != nil {
		return f.finishErr
	}
	f.finished = &finishCall{fullName, phone, gender, birthdate, avatarID}
	return nil
}

func (f *fakeProfiles) UpdateOnboardingSeen(_ context.Context, seen bool) error {
	f.seen = append(f.seen, seen)
	return f.seenErr
}

func (f *fakeProfiles) UpdatePhone(context.Context, string) error { return nil }

func (f *fakeProfiles) GetAvatars(context.Context) []models.Avatar {
	if f.avatars == nil {
		return []models.Avatar{}
	}
	return f.avatars
}

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestApp builds an App parked on start with output captured in the
// returned slice.
func newTestApp(t *testing.T, auth *fakeAuth, profiles *fakeProfiles, start navigation.Screen) (*App, *[]string) {
	t.Helper()
	out := captureOutput(t)
	nav := navigation.New(auth)
	require.NoError(t, nav.ResolveSplash(start))
	return &App{
		logger:   logging.Nop(),
		auth:     auth,
		profiles: profiles,
		nav:      nav,
		now:      func() time.Time { return fixedNow },
	}, out
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

// stubInputs feeds texts to the line prompts and passwords to the password
// prompts, in order. Running out of answers yields io.EOF.
func stubInputs(t *testing.T, texts []string, passwords []string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		p := passwords[0]
		passwords = passwords[1:]
		return []byte(p), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func joined(lines []string) string {
	s := ""
	for _, l := range lines {
		s += l
	}
	return s
}
