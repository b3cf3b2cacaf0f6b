// Package refreshtokens keeps the opaque refresh tokens issued with each
// session. A token is single use: redeeming it removes it.
package refreshtokens

import (
	"context"
	"time"

	"github.com/hifi-israel/sikacare/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID, token string, expires time.Time) error

	// Consume deletes token and returns the deleted row, or
	// common.ErrorNotFound when there was none.
	Consume(ctx context.Context, token string) (*models.RefreshToken, error)

	// DeleteByUser revokes every token of userID and reports how many were
	// removed.
	DeleteByUser(ctx context.Context, userID string) (int64, error)

	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
