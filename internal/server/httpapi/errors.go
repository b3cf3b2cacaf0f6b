package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hifi-israel/sikacare/internal/common"
	"github.com/hifi-israel/sikacare/internal/server/services"
)

// apiError is the error body of every endpoint. Clients show or match on Msg.
type apiError struct {
	Code      int    `json:"code"`
	ErrorCode string `json:"error_code"`
	Msg       string `json:"msg"`
}

const (
	codeBadJSON           = "bad_json"
	codeBadJWT            = "bad_jwt"
	codeNoAPIKey          = "no_api_key"
	codeInvalidCreds      = "invalid_credentials"
	codeEmailNotConfirmed = "email_not_confirmed"
	codeUserExists        = "user_already_exists"
	codeWeakPassword      = "weak_password"
	codeValidation        = "validation_failed"
	codeRateLimit         = "over_request_rate_limit"
	codeRefreshNotFound   = "refresh_token_not_found"
	codeUnsupportedGrant  = "unsupported_grant_type"
	codeProviderDisabled  = "provider_disabled"
	codeNotFound          = "not_found"
	codeUnexpected        = "unexpected_failure"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, apiError{Code: status, ErrorCode: code, Msg: msg})
}

// statusFor maps a service error to status, error code and message.
// Unknown errors become a 500 with a generic message.
func statusFor(err error) (int, string, string) {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusBadRequest, codeInvalidCreds, err.Error()
	case errors.Is(err, common.ErrEmailNotConfirmed):
		return http.StatusBadRequest, codeEmailNotConfirmed, err.Error()
	case errors.Is(err, common.ErrUserAlreadyExists):
		return http.StatusUnprocessableEntity, codeUserExists, err.Error()
	case errors.Is(err, common.ErrWeakPassword):
		return http.StatusUnprocessableEntity, codeWeakPassword, err.Error()
	case errors.Is(err, common.ErrInvalidEmail), errors.Is(err, services.ErrInvalidProfile):
		return http.StatusBadRequest, codeValidation, err.Error()
	case errors.Is(err, services.ErrUnsupportedProvider):
		return http.StatusBadRequest, codeProviderDisabled, err.Error()
	case errors.Is(err, common.ErrRateLimited):
		return http.StatusTooManyRequests, codeRateLimit, err.Error()
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired), errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, codeBadJWT, "invalid JWT"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, codeNotFound, "User not found"
	default:
		return http.StatusInternalServerError, codeUnexpected, "Internal server error"
	}
}
