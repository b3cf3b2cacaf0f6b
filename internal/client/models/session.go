// Package models defines the client-side data shapes exchanged with the
// SikaCare backend and persisted locally.
package models

import "time"

// Session is the token set issued by the backend on sign-in. The client keeps
// it as-is: it is persisted, restored and refreshed but never decoded.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user,omitempty"`
}

// Expired reports whether the access token is past its expiry at now.
// A session without expiry information is treated as not expired.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.ExpiresAt == 0 {
		return false
	}
	return now.Unix() >= s.ExpiresAt
}

type AppMetadata struct {
	Provider  string   `json:"provider"`
	Providers []string `json:"providers,omitempty"`
}

type User struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	EmailConfirmedAt *time.Time     `json:"email_confirmed_at,omitempty"`
	AppMetadata      AppMetadata    `json:"app_metadata"`
	UserMetadata     map[string]any `json:"user_metadata,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

func (u *User) EmailConfirmed() bool {
	return u != nil && u.EmailConfirmedAt != nil
}
