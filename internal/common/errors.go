package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// service specific errors
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// auth specific errors, message text is what clients match on
	ErrInvalidCredentials = errors.New("Invalid login credentials")
	ErrEmailNotConfirmed  = errors.New("Email not confirmed")
	ErrRateLimited        = errors.New("email rate limit exceeded")
	ErrUserAlreadyExists  = errors.New("User already registered")
	ErrWeakPassword       = errors.New("Password should be at least 8 characters")
	ErrInvalidEmail       = errors.New("Unable to validate email address: invalid format")
)
