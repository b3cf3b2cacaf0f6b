package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hifi-israel/sikacare/internal/common"
	"github.com/hifi-israel/sikacare/internal/dbx"
	"github.com/hifi-israel/sikacare/internal/logging"
	"github.com/hifi-israel/sikacare/internal/server/config"
	"github.com/hifi-israel/sikacare/internal/server/google"
	"github.com/hifi-israel/sikacare/internal/server/models"
	"github.com/hifi-israel/sikacare/internal/server/repositories/avatars"
	"github.com/hifi-israel/sikacare/internal/server/repositories/profiles"
	"github.com/hifi-israel/sikacare/internal/server/repositories/refreshtokens"
	"github.com/hifi-israel/sikacare/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func stubNow(t *testing.T, at time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = orig })
}

// fakeUsers is an in-memory users table keyed by lowercased e-mail.
type fakeUsers struct {
	byEmail   map[string]*models.User
	createErr error
	getErr    error
	updErr    error
	confirmed []string
	nextID    int
}

func newFakeUsers(list ...*models.User) *fakeUsers {
	f := &fakeUsers{byEmail: map[string]*models.User{}}
	for _, u := range list {
		f.byEmail[strings.ToLower(u.Email)] = u
	}
	return f
}

func (f *fakeUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[strings.ToLower(u.Email)]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.nextID++
	cp := *u
	cp.ID = fmt.Sprintf("user-%d", f.nextID)
	cp.CreatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	f.byEmail[strings.ToLower(u.Email)] = &cp
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsers) ConfirmEmail(ctx context.Context, id string) error {
	f.confirmed = append(f.confirmed, id)
	return nil
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, id string, hash, salt []byte) error {
	if f.updErr != nil {
		return f.updErr
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			u.PasswordHash, u.PasswordSalt = hash, salt
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeRefresh struct {
	tokens    map[string]*models.RefreshToken
	createErr error
	purged    time.Time
}

func newFakeRefresh() *fakeRefresh {
	return &fakeRefresh{tokens: map[string]*models.RefreshToken{}}
}

func (f *fakeRefresh) Create(ctx context.Context, userID, token string, expires time.Time) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tokens[token] = &models.RefreshToken{UserID: userID, Token: token, ExpiresAt: expires}
	return nil
}

func (f *fakeRefresh) Consume(ctx context.Context, token string) (*models.RefreshToken, error) {
	t, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(f.tokens, token)
	return t, nil
}

func (f *fakeRefresh) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	for k, t := range f.tokens {
		if t.UserID == userID {
			delete(f.tokens, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeRefresh) DeleteExpired(ctx context.Context, at time.Time) (int64, error) {
	f.purged = at
	var n int64
	for k, t := range f.tokens {
		if t.ExpiresAt.Before(at) {
			delete(f.tokens, k)
			n++
		}
	}
	return n, nil
}

type fakeProfiles struct {
	rows      map[string]*models.Profile
	createErr error
	updates   []models.ProfileUpdate
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{rows: map[string]*models.Profile{}}
}

func (f *fakeProfiles) Create(ctx context.Context, userID string) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.rows[userID]; !ok {
		f.rows[userID] = &models.Profile{UserID: userID}
	}
	return nil
}

func (f *fakeProfiles) Get(ctx context.Context, userID string) (*models.Profile, error) {
	p, ok := f.rows[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) Update(ctx context.Context, userID string, upd models.ProfileUpdate) error {
	if _, ok := f.rows[userID]; !ok {
		return common.ErrorNotFound
	}
	f.updates = append(f.updates, upd)
	return nil
}

type fakeAvatars struct {
	list []models.Avatar
	err  error
}

func (f *fakeAvatars) ListActive(ctx context.Context) ([]models.Avatar, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Avatar(nil), f.list...), nil
}

type fakeRepoManager struct {
	u *fakeUsers
	r *fakeRefresh
	p *fakeProfiles
	a *fakeAvatars
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsers(), r: newFakeRefresh(), p: newFakeProfiles(), a: &fakeAvatars{}}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error       { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository { return m.r }
func (m *fakeRepoManager) Profiles(db dbx.DBTX) profiles.Repository           { return m.p }
func (m *fakeRepoManager) Avatars(db dbx.DBTX) avatars.Repository             { return m.a }

type fakeVerifier struct {
	id         *google.Identity
	err        error
	gotNonce   string
	gotIDToken string
}

func (f *fakeVerifier) Verify(ctx context.Context, idToken, rawNonce string) (*google.Identity, error) {
	f.gotIDToken, f.gotNonce = idToken, rawNonce
	if f.err != nil {
		return nil, f.err
	}
	return f.id, nil
}

func newUserService(db *sql.DB, rm *fakeRepoManager, v google.Verifier) *UserService {
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	return NewUserService(db, rm, cfg, v, logging.Nop())
}
