// Package splash decides which screen the app opens on.
package splash

import (
	"context"

	"github.com/hifi-israel/sikacare/internal/client/models"
	"github.com/hifi-israel/sikacare/internal/client/navigation"
	"github.com/hifi-israel/sikacare/internal/logging"
)

type SessionSource interface {
	LoadFromStorage(ctx context.Context) error
	HasActiveSession() bool
}

type ProfileSource interface {
	GetProfile(ctx context.Context) (*models.Profile, error)
}

type Resolver struct {
	auth     SessionSource
	profiles ProfileSource
	logger   logging.Logger
}

func NewResolver(auth SessionSource, profiles ProfileSource, logger logging.Logger) *Resolver {
	return &Resolver{auth: auth, profiles: profiles, logger: logger.With("component", "splash")}
}

// ResolveDestination restores the stored session and returns Login, Onboarding
// or Home. Any failure is logged and resolves to Login, so a connectivity
// problem at startup looks like a signed-out user.
func (r *Resolver) ResolveDestination(ctx context.Context) navigation.Screen {
	if err := r.auth.LoadFromStorage(ctx); err != nil {
		r.logger.Warn(ctx, "session restore failed", "error", err)
		return navigation.Login
	}
	if !r.auth.HasActiveSession() {
		return navigation.Login
	}

	profile, err := r.profiles.GetProfile(ctx)
	if err != nil {
		r.logger.Warn(ctx, "profile fetch failed", "error", err)
		return navigation.Login
	}
	if profile != nil && profile.IsOnboardingSeen {
		return navigation.Home
	}
	return navigation.Onboarding
}
