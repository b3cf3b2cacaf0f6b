package users

import (
	"context"

	"github.com/hifi-israel/sikacare/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	ConfirmEmail(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id string, hash, salt []byte) error
}
