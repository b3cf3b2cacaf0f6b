// Package profiles stores the per-user onboarding data in the profiles
// table.
package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/hifi-israel/sikacare/internal/common"
	"github.com/hifi-israel/sikacare/internal/dbx"
	"github.com/hifi-israel/sikacare/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID string) error {
	query := `
		INSERT INTO profiles (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	query := `
		SELECT user_id, full_name, phone, gender, to_char(birthdate, 'YYYY-MM-DD'),
		       avatar_id, is_onboarding_seen, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	var (
		p                                  models.Profile
		fullName, phone, gender, birthdate sql.NullString
		avatarID                           sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &fullName, &phone, &gender, &birthdate, &avatarID, &p.IsOnboardingSeen, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	p.FullName = nullString(fullName)
	p.Phone = nullString(phone)
	p.Gender = nullString(gender)
	p.Birthdate = nullString(birthdate)
	if avatarID.Valid {
		id := int(avatarID.Int64)
		p.AvatarID = &id
	}
	return &p, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// Update writes the non-nil fields of upd and bumps updated_at. An empty
// update is a no-op; a missing row is common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, userID string, upd models.ProfileUpdate) error {
	if upd.Empty() {
		return nil
	}

	var sets []string
	args := []any{userID}
	add := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.FullName != nil {
		add("full_name", *upd.FullName)
	}
	if upd.Phone != nil {
		add("phone", *upd.Phone)
	}
	if upd.Gender != nil {
		add("gender", *upd.Gender)
	}
	if upd.Birthdate != nil {
		args = append(args, *upd.Birthdate)
		sets = append(sets, fmt.Sprintf("birthdate = $%d::date", len(args)))
	}
	if upd.AvatarID != nil {
		add("avatar_id", *upd.AvatarID)
	}
	if upd.IsOnboardingSeen != nil {
		add("is_onboarding_seen", *upd.IsOnboardingSeen)
	}
	sets = append(sets, "updated_at = now()")

	query := "UPDATE profiles SET " + strings.Join(sets, ", ") + " WHERE user_id = $1"

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
