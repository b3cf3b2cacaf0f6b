package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hifi-israel/sikacare/internal/common"
	"github.com/hifi-israel/sikacare/internal/server/models"
	"github.com/hifi-israel/sikacare/internal/server/repositories/repomanager"
	"github.com/hifi-israel/sikacare/internal/validation"
)

var ErrInvalidProfile = errors.New("invalid profile data")

// ProfileService exposes the profiles table. A caller only ever sees and
// changes its own row; other rows behave as if they did not exist.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager) *ProfileService {
	return &ProfileService{db: db, repomanager: m}
}

// Select returns zero or one profile for userID.
func (s *ProfileService) Select(ctx context.Context, callerID, userID string) ([]models.Profile, error) {
	if callerID == "" || callerID != userID {
		return []models.Profile{}, nil
	}
	p, err := s.repomanager.Profiles(s.db).Get(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return []models.Profile{}, nil
		}
		return nil, err
	}
	return []models.Profile{*p}, nil
}

// Update applies upd to the caller's own row. Updating someone else's row
// or a missing row changes nothing and is not an error.
func (s *ProfileService) Update(ctx context.Context, callerID, userID string, upd models.ProfileUpdate) error {
	if err := checkProfileUpdate(upd); err != nil {
		return err
	}
	if callerID == "" || callerID != userID || upd.Empty() {
		return nil
	}
	err := s.repomanager.Profiles(s.db).Update(ctx, userID, upd)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	return err
}

func checkProfileUpdate(upd models.ProfileUpdate) error {
	if upd.Gender != nil && !validation.IsValidGender(*upd.Gender) {
		return ErrInvalidProfile
	}
	if upd.Phone != nil && *upd.Phone != "" && !validation.IsValidPhone(*upd.Phone) {
		return ErrInvalidProfile
	}
	if upd.Birthdate != nil {
		if _, err := validation.ParseBirthdate(*upd.Birthdate, now()); err != nil {
			return ErrInvalidProfile
		}
	}
	if upd.AvatarID != nil && *upd.AvatarID <= 0 {
		return ErrInvalidProfile
	}
	return nil
}
