package models

import "fmt"

type Avatar struct {
	ID       int    `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Active   bool   `json:"active"`
}

// FallbackAvatarCount is how many placeholder avatars are offered when the
// catalog cannot be read or is empty.
const FallbackAvatarCount = 5

// FallbackAvatars returns placeholder entries with ids 1..FallbackAvatarCount.
// They carry no image URL so the UI shows its default picture.
func FallbackAvatars() []Avatar {
	out := make([]Avatar, 0, FallbackAvatarCount)
	for i := 1; i <= FallbackAvatarCount; i++ {
		out = append(out, Avatar{
			ID:     i,
			Key:    fmt.Sprintf("avatar_%d", i),
			Name:   fmt.Sprintf("Avatar %d", i),
			Active: true,
		})
	}
	return out
}

// FindAvatar returns the avatar with the given id, if present.
func FindAvatar(avatars []Avatar, id int) (Avatar, bool) {
	for _, a := range avatars {
		if a.ID == id {
			return a, true
		}
	}
	return Avatar{}, false
}
