package models

// Profile is the per-user row of the profiles table. Optional columns are
// pointers so a missing value stays distinguishable from an empty one.
type Profile struct {
	UserID           string  `json:"user_id"`
	FullName         *string `json:"full_name"`
	Phone            *string `json:"phone"`
	Gender           *string `json:"gender"`
	Birthdate        *string `json:"birthdate"`
	AvatarID         *int    `json:"avatar_id"`
	IsOnboardingSeen bool    `json:"is_onboarding_seen"`
}

// DisplayName falls back to "User" when no name was stored yet.
func (p *Profile) DisplayName() string {
	if p == nil || p.FullName == nil || *p.FullName == "" {
		return "User"
	}
	return *p.FullName
}

// ProfileUpdate is the PATCH body for a profile row; nil fields are left
// untouched.
type ProfileUpdate struct {
	FullName         *string `json:"full_name,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Gender           *string `json:"gender,omitempty"`
	Birthdate        *string `json:"birthdate,omitempty"`
	AvatarID         *int    `json:"avatar_id,omitempty"`
	IsOnboardingSeen *bool   `json:"is_onboarding_seen,omitempty"`
}
