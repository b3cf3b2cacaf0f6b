package cli

import (
	"context"

	"github.com/hifi-israel/sikacare/internal/client/models"
	"github.com/hifi-israel/sikacare/internal/client/onboarding"
)

func (a *App) showProfile(ctx context.Context, _ []string) error {
	p, err := a.profiles.GetProfile(ctx)
	if err != nil {
		return err
	}
	printlnFn("Hello,", p.DisplayName())
	if email, ok := a.auth.CurrentUserEmail(); ok {
		printlnFn("Email:    ", email)
	}
	if p == nil {
		return nil
	}
	if p.Phone != nil {
		printlnFn("Phone:    ", *p.Phone)
	}
	if p.Birthdate != nil {
		printlnFn("Birthdate:", *p.Birthdate)
	}
	if p.AvatarID != nil {
		name := "Avatar"
		if av, ok := models.FindAvatar(onboarding.PickAvatars(a.profiles.GetAvatars(ctx)), *p.AvatarID); ok {
			name = av.Name
		}
		printlnFn("Avatar:   ", name)
	}
	return nil
}

// logout always leaves the local session cleared; a failed remote sign-out
// is only logged by the auth service.
func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.auth.SignOut(ctx); err != nil {
		a.logger.Warn(ctx, "sign out", "error", err)
	}
	if err := a.move(ctx, a.nav.Logout); err != nil {
		return err
	}
	printlnFn("Signed out.")
	return nil
}
