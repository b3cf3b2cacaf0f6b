package avatars

import (
	"context"

	"github.com/hifi-israel/sikacare/internal/server/models"
)

type Repository interface {
	// ListActive returns the active catalog ordered by id.
	ListActive(ctx context.Context) ([]models.Avatar, error)
}
