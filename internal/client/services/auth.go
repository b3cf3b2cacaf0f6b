// Package services contains the application services of the SikaCare client.
// This file defines the auth gateway: sign-in and sign-up, session restore
// and refresh, password reset, Google sign-in and sign-out.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hifi-israel/sikacare/internal/client/client"
	"github.com/hifi-israel/sikacare/internal/client/google"
	"github.com/hifi-israel/sikacare/internal/client/models"
	"github.com/hifi-israel/sikacare/internal/client/session"
	"github.com/hifi-israel/sikacare/internal/common"
	"github.com/hifi-israel/sikacare/internal/logging"
)

// AuthService defines authentication operations for the app.
//
// The session accessors (HasActiveSession, CurrentUserEmail, ...) read the
// cached session and never touch the network. Every other method honors
// context cancellation.
type AuthService interface {
	LoadFromStorage(ctx context.Context) error

	HasActiveSession() bool
	CurrentUserEmail() (string, bool)
	CurrentUserID() (string, bool)
	IsEmailConfirmed() bool
	AccessToken() string
	Provider() string

	SignInWithEmailPassword(ctx context.Context, email, password string) error
	SignUpWithEmailPassword(ctx context.Context, email, password string) error
	ResetPasswordForEmail(ctx context.Context, email string) error
	SendPasswordResetEmail(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, password string) error
	SignInWithGoogle(ctx context.Context) error
	SignOut(ctx context.Context) error

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type AuthOption func(*authService)

// WithRealReset makes the reset methods call the backend recover endpoint
// instead of only logging the request.
func WithRealReset(enabled bool) AuthOption {
	return func(a *authService) { a.realReset = enabled }
}

func WithClock(now func() time.Time) AuthOption {
	return func(a *authService) { a.now = now }
}

type authService struct {
	client client.Client
	store  session.Store
	google google.Provider
	logger logging.Logger

	realReset bool
	now       func() time.Time

	mu      sync.RWMutex
	session *models.Session
}

func NewAuthService(c client.Client, store session.Store, provider google.Provider, logger logging.Logger, opts ...AuthOption) AuthService {
	a := &authService{
		client: c,
		store:  store,
		google: provider,
		logger: logger.With("service", "auth"),
		now:    time.Now,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *authService) current() *models.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

func (a *authService) currentUser() *models.User {
	if s := a.current(); s != nil {
		return s.User
	}
	return nil
}

// setSession caches s and persists it. A nil s clears both.
func (a *authService) setSession(ctx context.Context, s *models.Session) error {
	a.mu.Lock()
	a.session = s
	a.mu.Unlock()

	if s == nil {
		return a.store.Clear(ctx)
	}
	if err := a.store.Save(ctx, s); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}
	return nil
}

// LoadFromStorage restores the persisted session. An expired session is
// refreshed; if that fails the stored session is dropped and the refresh
// error returned.
func (a *authService) LoadFromStorage(ctx context.Context) error {
	stored, err := a.store.Load(ctx)
	if err != nil {
		return err
	}
	if stored == nil {
		return nil
	}

	if !stored.Expired(a.now()) {
		a.mu.Lock()
		a.session = stored
		a.mu.Unlock()
		return nil
	}

	refreshed, err := a.client.RefreshSession(ctx, stored.RefreshToken)
	if err != nil {
		a.logger.Warn(ctx, "stored session could not be refreshed", "error", err)
		if clearErr := a.setSession(ctx, nil); clearErr != nil {
			a.logger.Error(ctx, "failed to clear stored session", "error", clearErr)
		}
		return fmt.Errorf("refresh error: %w", err)
	}
	if refreshed.User == nil {
		refreshed.User = stored.User
	}
	return a.setSession(ctx, refreshed)
}

func (a *authService) HasActiveSession() bool {
	return a.current() != nil
}

func (a *authService) CurrentUserEmail() (string, bool) {
	u := a.currentUser()
	if u == nil || u.Email == "" {
		return "", false
	}
	return u.Email, true
}

func (a *authService) CurrentUserID() (string, bool) {
	u := a.currentUser()
	if u == nil || u.ID == "" {
		return "", false
	}
	return u.ID, true
}

func (a *authService) IsEmailConfirmed() bool {
	return a.currentUser().EmailConfirmed()
}

func (a *authService) AccessToken() string {
	if s := a.current(); s != nil {
		return s.AccessToken
	}
	return ""
}

// Provider returns the identity provider of the signed-in user, "" when
// signed out.
func (a *authService) Provider() string {
	u := a.currentUser()
	if u == nil {
		return ""
	}
	return u.AppMetadata.Provider
}

func (a *authService) SignInWithEmailPassword(ctx context.Context, email, password string) error {
	s, err := a.client.SignInWithPassword(ctx, email, password)
	if err != nil {
		return err
	}
	return a.setSession(ctx, s)
}

// SignUpWithEmailPassword creates the account with confirmation e-mail
// suppressed; the app runs its own verification step during onboarding.
func (a *authService) SignUpWithEmailPassword(ctx context.Context, email, password string) error {
	data := map[string]any{common.SkipEmailVerificationKey: true}

	s, _, err := a.client.SignUp(ctx, email, password, data)
	if err != nil {
		return err
	}
	if s == nil {
		a.logger.Info(ctx, "sign-up pending confirmation", "email", email)
		return nil
	}
	return a.setSession(ctx, s)
}

func (a *authService) ResetPasswordForEmail(ctx context.Context, email string) error {
	return a.requestReset(ctx, "reset password", email)
}

func (a *authService) SendPasswordResetEmail(ctx context.Context, email string) error {
	return a.requestReset(ctx, "send password reset email", email)
}

func (a *authService) requestReset(ctx context.Context, op, email string) error {
	if !a.realReset {
		a.logger.Info(ctx, "simulated: "+op, "email", email)
		return nil
	}
	if err := a.client.Recover(ctx, email); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdatePassword changes the password of the signed-in user. Without a
// session it is simulated like the reset e-mail that led here.
func (a *authService) UpdatePassword(ctx context.Context, password string) error {
	token := a.AccessToken()
	if token == "" {
		a.logger.Info(ctx, "simulated: update password")
		return nil
	}
	return a.client.UpdatePassword(ctx, token, password)
}

func (a *authService) SignInWithGoogle(ctx context.Context) error {
	cred, err := a.google.SignIn(ctx)
	if err != nil {
		return err
	}

	s, err := a.client.SignInWithIDToken(ctx, common.ProviderGoogle, cred.IDToken, cred.Nonce)
	if err != nil {
		return err
	}
	return a.setSession(ctx, s)
}

// SignOut revokes the session remotely when possible and always forgets it
// locally.
func (a *authService) SignOut(ctx context.Context) error {
	if token := a.AccessToken(); token != "" {
		if err := a.client.SignOut(ctx, token); err != nil {
			a.logger.Warn(ctx, "remote sign-out failed", "error", err)
		}
	}
	return a.setSession(ctx, nil)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
