package services

import (
	"context"

	"github.com/hifi-israel/sikacare/internal/client/client"
	"github.com/hifi-israel/sikacare/internal/client/models"
	"github.com/hifi-israel/sikacare/internal/logging"
)

const profileOwnerColumn = "user_id"

// SessionSource is the part of AuthService the profile service needs.
type SessionSource interface {
	CurrentUserID() (string, bool)
	AccessToken() string
}

// ProfileService reads and updates the signed-in user's profile row and the
// avatar catalog. Calls made while signed out are no-ops.
type ProfileService interface {
	GetProfile(ctx context.Context) (*models.Profile, error)
	FinishOnboarding(ctx context.Context, fullName, phone, gender, birthdate string, avatarID int) error
	UpdateOnboardingSeen(ctx context.Context, seen bool) error
	UpdatePhone(ctx context.Context, phone string) error
	GetAvatars(ctx context.Context) []models.Avatar
}

type profileService struct {
	client client.Client
	auth   SessionSource
	logger logging.Logger
}

func NewProfileService(c client.Client, auth SessionSource, logger logging.Logger) ProfileService {
	return &profileService{client: c, auth: auth, logger: logger.With("service", "profile")}
}

// GetProfile returns nil, nil when signed out or when the row does not exist.
func (p *profileService) GetProfile(ctx context.Context) (*models.Profile, error) {
	userID, ok := p.auth.CurrentUserID()
	if !ok {
		return nil, nil
	}

	rows, err := p.client.SelectProfiles(ctx, p.auth.AccessToken(), profileOwnerColumn, userID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (p *profileService) FinishOnboarding(ctx context.Context, fullName, phone, gender, birthdate string, avatarID int) error {
	seen := true
	return p.update(ctx, models.ProfileUpdate{
		FullName:         &fullName,
		Phone:            &phone,
		Gender:           &gender,
		Birthdate:        &birthdate,
		AvatarID:         &avatarID,
		IsOnboardingSeen: &seen,
	})
}

func (p *profileService) UpdateOnboardingSeen(ctx context.Context, seen bool) error {
	return p.update(ctx, models.ProfileUpdate{IsOnboardingSeen: &seen})
}

func (p *profileService) UpdatePhone(ctx context.Context, phone string) error {
	return p.update(ctx, models.ProfileUpdate{Phone: &phone})
}

func (p *profileService) update(ctx context.Context, u models.ProfileUpdate) error {
	userID, ok := p.auth.CurrentUserID()
	if !ok {
		return nil
	}
	return p.client.UpdateProfiles(ctx, p.auth.AccessToken(), profileOwnerColumn, userID, u)
}

// GetAvatars returns the active avatars. Failures are logged and reported as
// an empty catalog; callers fall back to models.FallbackAvatars.
func (p *profileService) GetAvatars(ctx context.Context) []models.Avatar {
	avatars, err := p.client.SelectAvatars(ctx, p.auth.AccessToken())
	if err != nil {
		p.logger.Warn(ctx, "failed to fetch avatars", "error", err)
		return []models.Avatar{}
	}
	if avatars == nil {
		return []models.Avatar{}
	}
	return avatars
}
