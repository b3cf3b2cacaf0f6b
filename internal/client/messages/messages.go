// Package messages turns errors from the auth and profile calls into the text
// shown to the user.
package messages

import (
	"context"
	"errors"
	"strings"

	"github.com/hifi-israel/sikacare/internal/client/client"
	"github.com/hifi-israel/sikacare/internal/client/google"
)

const (
	InvalidCredentials = "Incorrect email or password."
	EmailNotConfirmed  = "Please confirm your email before signing in."
	RateLimited        = "Too many attempts. Please wait a moment and try again."
	AlreadyRegistered  = "An account with this email already exists."
	WeakPassword       = "The password does not meet the requirements."
	GoogleUnsupported  = "Google sign-in is not available on this device."
	GoogleFailed       = "Google sign-in failed. Please try again."
	GoogleToken        = "Could not read the Google account token. Please try again."
	Offline            = "Cannot reach the server. Check your connection and try again."
	Unauthorized       = "Your session has expired. Please sign in again."
	Generic            = "Something went wrong. Please try again."
)

// backend message fragments, matched case-insensitively
var textRules = []struct {
	fragment string
	message  string
}{
	{"invalid login credentials", InvalidCredentials},
	{"email not confirmed", EmailNotConfirmed},
	{"rate limit", RateLimited},
	{"already registered", AlreadyRegistered},
	{"password should", WeakPassword},
}

// ForError returns the user-facing text for err, or "" for a nil error.
//
// Backend failures are recognised by fragments of their message text; local
// failure classes are recognised with errors.Is. Anything else gets Generic.
func ForError(err error) string {
	if err == nil {
		return ""
	}

	text := strings.ToLower(err.Error())
	for _, r := range textRules {
		if strings.Contains(text, r.fragment) {
			return r.message
		}
	}

	switch {
	case errors.Is(err, google.ErrGoogleUnsupported):
		return GoogleUnsupported
	case errors.Is(err, google.ErrTokenParsing):
		return GoogleToken
	case errors.Is(err, google.ErrCredential):
		return GoogleFailed
	case errors.Is(err, client.ErrRateLimited):
		return RateLimited
	case errors.Is(err, client.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return Offline
	case errors.Is(err, client.ErrUnauthorized), errors.Is(err, client.ErrNoSession):
		return Unauthorized
	default:
		return Generic
	}
}
