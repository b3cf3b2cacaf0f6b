// Package services contains server-side business logic. This file implements
// UserService: sign-up, password and Google sign-in, session refresh,
// sign-out and password changes.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hifi-israel/sikacare/internal/common"
	"github.com/hifi-israel/sikacare/internal/dbx"
	"github.com/hifi-israel/sikacare/internal/logging"
	"github.com/hifi-israel/sikacare/internal/server/auth"
	"github.com/hifi-israel/sikacare/internal/server/config"
	"github.com/hifi-israel/sikacare/internal/server/google"
	"github.com/hifi-israel/sikacare/internal/server/models"
	"github.com/hifi-israel/sikacare/internal/server/repositories/repomanager"
	"github.com/hifi-israel/sikacare/internal/validation"
)

const TokenTypeBearer = "bearer"

var ErrUnsupportedProvider = errors.New("Unsupported provider")

// now is a seam for tests.
var now = time.Now

// Session is issued on every successful sign-in or refresh.
type Session struct {
	AccessToken  string
	TokenType    string
	ExpiresIn    int64
	ExpiresAt    int64
	RefreshToken string
	User         *models.User
}

type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	google                       google.Verifier
	logger                       logging.Logger
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService wires the service. verifier may be nil, which disables
// Google sign-in.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, verifier google.Verifier, logger logging.Logger) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		google:                       verifier,
		logger:                       logger.With("module", "user_service"),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// SignUp creates the user and an empty profile in one transaction. The
// e-mail counts as confirmed right away when meta carries
// skip_email_verification; only then is a session returned.
func (s *UserService) SignUp(ctx context.Context, email, password string, meta map[string]any) (*Session, *models.User, error) {
	email = strings.TrimSpace(email)
	if !validation.IsValidEmail(email) {
		return nil, nil, common.ErrInvalidEmail
	}
	if err := checkPasswordStrength(password); err != nil {
		return nil, nil, err
	}

	hash, salt := hashPassword(password)
	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		PasswordSalt: salt,
		Provider:     common.ProviderEmail,
		Metadata:     meta,
	}
	if skip, _ := meta[common.SkipEmailVerificationKey].(bool); skip {
		t := now()
		user.EmailConfirmedAt = &t
	}

	var session *Session
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return common.ErrUserAlreadyExists
			}
			return fmt.Errorf("error creating user: %w", err)
		}
		if err := s.repomanager.Profiles(tx).Create(ctx, created.ID); err != nil {
			return fmt.Errorf("error creating profile: %w", err)
		}
		user = created
		if !user.EmailConfirmed() {
			return nil
		}
		session, err = s.issueSession(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if session == nil {
		s.logger.Info(ctx, "confirmation e-mail queued", "user_id", user.ID)
	}
	return session, user, nil
}

// SignInWithPassword never tells apart an unknown e-mail from a wrong
// password.
func (s *UserService) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}
	if !checkPassword(password, user.PasswordHash, user.PasswordSalt) {
		return nil, common.ErrInvalidCredentials
	}
	if !user.EmailConfirmed() {
		return nil, common.ErrEmailNotConfirmed
	}
	return s.issueSession(ctx, s.db, user)
}

// SignInWithIDToken verifies a Google ID token and signs the owner in,
// creating the user and profile on first use.
func (s *UserService) SignInWithIDToken(ctx context.Context, provider, idToken, nonce string) (*Session, error) {
	if provider != common.ProviderGoogle || s.google == nil {
		return nil, ErrUnsupportedProvider
	}
	id, err := s.google.Verify(ctx, idToken, nonce)
	if err != nil {
		s.logger.Warn(ctx, "id token rejected", "error", err)
		return nil, common.ErrInvalidToken
	}

	var session *Session
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.upsertGoogleUser(ctx, tx, id)
		if err != nil {
			return err
		}
		session, err = s.issueSession(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *UserService) upsertGoogleUser(ctx context.Context, tx dbx.DBTX, id *google.Identity) (*models.User, error) {
	users := s.repomanager.Users(tx)

	user, err := users.GetByEmail(ctx, id.Email)
	switch {
	case err == nil:
		if !id.EmailVerified && user.Provider != common.ProviderGoogle {
			s.logger.Warn(ctx, "refusing to link unverified google email", "user_id", user.ID)
			return nil, common.ErrInvalidCredentials
		}
		if id.EmailVerified && !user.EmailConfirmed() {
			if err := users.ConfirmEmail(ctx, user.ID); err != nil {
				return nil, fmt.Errorf("error confirming email: %w", err)
			}
			t := now()
			user.EmailConfirmedAt = &t
		}
		return user, nil
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	user = &models.User{
		Email:    id.Email,
		Provider: common.ProviderGoogle,
		Metadata: map[string]any{"full_name": id.Name, "sub": id.Subject},
	}
	if id.EmailVerified {
		t := now()
		user.EmailConfirmedAt = &t
	}
	user, err = users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	if err := s.repomanager.Profiles(tx).Create(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("error creating profile: %w", err)
	}
	s.logger.Info(ctx, "google user created", "user_id", user.ID)
	return user, nil
}

// RefreshToken redeems a refresh token and returns a new session. The old
// token is consumed even when it turns out to be expired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*Session, error) {
	var session *Session
	var expired bool
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		token, err := s.repomanager.RefreshTokens(tx).Consume(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("error consuming refresh token: %w", err)
		}
		if token.ExpiresAt.Before(now()) {
			expired = true
			return nil
		}

		user, err := s.repomanager.Users(tx).GetByID(ctx, token.UserID)
		if err != nil {
			return fmt.Errorf("error searching user: %w", err)
		}
		session, err = s.issueSession(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, common.ErrRefreshTokenExpired
	}
	return session, nil
}

// SignOut revokes every refresh token of the user. Access tokens stay valid
// until they expire.
func (s *UserService) SignOut(ctx context.Context, userID string) error {
	n, err := s.repomanager.RefreshTokens(s.db).DeleteByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("error revoking refresh tokens: %w", err)
	}
	s.logger.Debug(ctx, "signed out", "user_id", userID, "revoked", n)
	return nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

func (s *UserService) UpdatePassword(ctx context.Context, userID, password string) (*models.User, error) {
	if err := checkPasswordStrength(password); err != nil {
		return nil, err
	}
	hash, salt := hashPassword(password)
	users := s.repomanager.Users(s.db)
	if err := users.UpdatePassword(ctx, userID, hash, salt); err != nil {
		return nil, err
	}
	return users.GetByID(ctx, userID)
}

// Recover would send a password reset e-mail. No mail transport is
// configured, so the request is only logged. The answer never reveals
// whether the address is registered.
func (s *UserService) Recover(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !validation.IsValidEmail(email) {
		return common.ErrInvalidEmail
	}
	_, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	switch {
	case err == nil:
		s.logger.Info(ctx, "password recovery requested", "email", email)
	case errors.Is(err, common.ErrorNotFound):
		s.logger.Debug(ctx, "password recovery for unknown email")
	default:
		return common.ErrorInternal
	}
	return nil
}

// PurgeExpiredTokens deletes refresh tokens that expired before t.
func (s *UserService) PurgeExpiredTokens(ctx context.Context, t time.Time) (int64, error) {
	return s.repomanager.RefreshTokens(s.db).DeleteExpired(ctx, t)
}

// UserIDFromToken validates an access token and returns its subject.
func (s *UserService) UserIDFromToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

func (s *UserService) issueSession(ctx context.Context, db dbx.DBTX, user *models.User) (*Session, error) {
	access, expires, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(db).Create(ctx, user.ID, refresh, now().Add(s.refreshTokenValidityDuration)); err != nil {
		return nil, common.ErrorInternal
	}
	return &Session{
		AccessToken:  access,
		TokenType:    TokenTypeBearer,
		ExpiresIn:    int64(s.accessTokenValidityDuration.Seconds()),
		ExpiresAt:    expires.Unix(),
		RefreshToken: refresh,
		User:         user,
	}, nil
}
