package httpapi

import (
	"time"

	"github.com/hifi-israel/sikacare/internal/server/auth"
	"github.com/hifi-israel/sikacare/internal/server/models"
	"github.com/hifi-israel/sikacare/internal/server/services"
)

type appMetadata struct {
	Provider  string   `json:"provider"`
	Providers []string `json:"providers"`
}

type userView struct {
	ID               string         `json:"id"`
	Aud              string         `json:"aud"`
	Role             string         `json:"role"`
	Email            string         `json:"email"`
	EmailConfirmedAt *time.Time     `json:"email_confirmed_at,omitempty"`
	AppMetadata      appMetadata    `json:"app_metadata"`
	UserMetadata     map[string]any `json:"user_metadata"`
	CreatedAt        time.Time      `json:"created_at"`
}

type sessionView struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
	ExpiresAt    int64     `json:"expires_at"`
	RefreshToken string    `json:"refresh_token"`
	User         *userView `json:"user"`
}

func newUserView(u *models.User) *userView {
	if u == nil {
		return nil
	}
	meta := u.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	return &userView{
		ID:               u.ID,
		Aud:              auth.RoleAuthenticated,
		Role:             auth.RoleAuthenticated,
		Email:            u.Email,
		EmailConfirmedAt: u.EmailConfirmedAt,
		AppMetadata:      appMetadata{Provider: u.Provider, Providers: []string{u.Provider}},
		UserMetadata:     meta,
		CreatedAt:        u.CreatedAt,
	}
}

func newSessionView(s *services.Session) *sessionView {
	return &sessionView{
		AccessToken:  s.AccessToken,
		TokenType:    s.TokenType,
		ExpiresIn:    s.ExpiresIn,
		ExpiresAt:    s.ExpiresAt,
		RefreshToken: s.RefreshToken,
		User:         newUserView(s.User),
	}
}
