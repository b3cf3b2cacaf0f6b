// Package users stores accounts in the users table.
package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hifi-israel/sikacare/internal/common"
	"github.com/hifi-israel/sikacare/internal/dbx"
	"github.com/hifi-israel/sikacare/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts user and fills in the generated id and creation time.
// A duplicate e-mail yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	meta := user.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	rawMeta, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}

	query :=
		`INSERT INTO users (email, password_hash, password_salt, provider, email_confirmed_at, raw_user_meta_data)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.PasswordSalt, user.Provider, user.EmailConfirmedAt, rawMeta).
		Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

const selectUser = `SELECT id, email, password_hash, password_salt, provider, email_confirmed_at, raw_user_meta_data, created_at
		 FROM users
		 `

func (r *PostgresRepository) get(ctx context.Context, where string, arg any) (*models.User, error) {
	user := &models.User{}
	var confirmed sql.NullTime
	var rawMeta []byte

	err := r.db.QueryRowContext(ctx, selectUser+where, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.PasswordSalt, &user.Provider,
		&confirmed, &rawMeta, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if confirmed.Valid {
		t := confirmed.Time
		user.EmailConfirmedAt = &t
	}
	if len(rawMeta) > 0 {
		if err := json.Unmarshal(rawMeta, &user.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata: %w", err)
		}
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.get(ctx, `WHERE lower(email) = lower($1)`, email)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
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

// ConfirmEmail stamps email_confirmed_at unless it is already set.
func (r *PostgresRepository) ConfirmEmail(ctx context.Context, id string) error {
	return r.exec(ctx,
		`UPDATE users SET email_confirmed_at = COALESCE(email_confirmed_at, now())
		 WHERE id = $1`, id)
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id string, hash, salt []byte) error {
	return r.exec(ctx,
		`UPDATE users SET password_hash = $2, password_salt = $3
		 WHERE id = $1`, id, hash, salt)
}
