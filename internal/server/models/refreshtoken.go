package models

import "time"

// RefreshToken is an opaque single-use token that can be exchanged for a new
// session until ExpiresAt.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
