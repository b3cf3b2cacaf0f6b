package client

import (
	"context"

	"github.com/hifi-israel/sikacare/internal/client/models"
)

// Client is the transport contract between the app and the backend: the
// auth endpoints plus the two tables the app reads and writes.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	SignUp(ctx context.Context, email, password string, data map[string]any) (*models.Session, *models.User, error)
	SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error)
	SignInWithIDToken(ctx context.Context, provider, idToken, nonce string) (*models.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*models.Session, error)
	GetUser(ctx context.Context, accessToken string) (*models.User, error)
	UpdatePassword(ctx context.Context, accessToken, password string) error
	Recover(ctx context.Context, email string) error
	SignOut(ctx context.Context, accessToken string) error

	SelectProfiles(ctx context.Context, accessToken, column, value string) ([]models.Profile, error)
	UpdateProfiles(ctx context.Context, accessToken, column, value string, update models.ProfileUpdate) error
	SelectAvatars(ctx context.Context, accessToken string) ([]models.Avatar, error)
}
