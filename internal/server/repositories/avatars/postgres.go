// Package avatars reads the avatar catalog.
package avatars

import (
	"context"
	"fmt"

	"github.com/hifi-israel/sikacare/internal/dbx"
	"github.com/hifi-israel/sikacare/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]models.Avatar, error) {
	query := `
		SELECT id, key, name, image_url, active
		FROM avatars
		WHERE active
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.Avatar{}
	for rows.Next() {
		var a models.Avatar
		if err := rows.Scan(&a.ID, &a.Key, &a.Name, &a.ImageURL, &a.Active); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
