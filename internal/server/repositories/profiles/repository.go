package profiles

import (
	"context"

	"github.com/hifi-israel/sikacare/internal/server/models"
)

type Repository interface {
	// Create adds an empty profile for userID; an existing row is kept.
	Create(ctx context.Context, userID string) error
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, userID string, upd models.ProfileUpdate) error
}
