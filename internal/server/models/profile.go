package models

import "time"

// Profile mirrors the profiles table; nullable columns are pointers.
type Profile struct {
	UserID           string    `json:"user_id"`
	FullName         *string   `json:"full_name"`
	Phone            *string   `json:"phone"`
	Gender           *string   `json:"gender"`
	Birthdate        *string   `json:"birthdate"`
	AvatarID         *int      `json:"avatar_id"`
	IsOnboardingSeen bool      `json:"is_onboarding_seen"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ProfileUpdate is a partial update. Only non-nil fields are written.
type ProfileUpdate struct {
	FullName         *string `json:"full_name,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Gender           *string `json:"gender,omitempty"`
	Birthdate        *string `json:"birthdate,omitempty"`
	AvatarID         *int    `json:"avatar_id,omitempty"`
	IsOnboardingSeen *bool   `json:"is_onboarding_seen,omitempty"`
}

func (u ProfileUpdate) Empty() bool {
	return u.FullName == nil && u.Phone == nil && u.Gender == nil &&
		u.Birthdate == nil && u.AvatarID == nil && u.IsOnboardingSeen == nil
}
