// Package common contains shared constants and sentinel errors used across
// SikaCare components.
package common

// Headers understood by the backend. The API key identifies the calling
// application, the bearer token identifies the signed-in user.
const (
	APIKeyHeaderName        = "apikey"
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "
)

// SkipEmailVerificationKey is the user metadata flag a client sets on sign-up
// to ask the backend not to send a confirmation e-mail.
const SkipEmailVerificationKey = "skip_email_verification"

// ProviderEmail and ProviderGoogle name the identity providers a user can
// come from.
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)
