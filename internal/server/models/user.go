// Package models defines the backend's persisted records.
package models

import "time"

// User is a row of the users table. Google users have no password.
type User struct {
	ID               string
	Email            string
	PasswordHash     []byte
	PasswordSalt     []byte
	Provider         string
	EmailConfirmedAt *time.Time
	Metadata         map[string]any
	CreatedAt        time.Time
}

func (u *User) EmailConfirmed() bool {
	return u.EmailConfirmedAt != nil
}
