package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/hifi-israel/sikacare/internal/common"
	"github.com/hifi-israel/sikacare/internal/server/services"
)

const maxBodyBytes = 1 << 20

type credentialsRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data"`
}

type idTokenRequest struct {
	Provider string `json:"provider"`
	IDToken  string `json:"id_token"`
	Nonce    string `json:"nonce"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeError(w, http.StatusBadRequest, codeBadJSON, "Could not parse request body as JSON")
	return false
}

func (h *handler) signUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decode(w, r, &req) {
		return
	}

	session, user, err := h.Users.SignUp(r.Context(), req.Email, req.Password, req.Data)
	h.Metrics.observeSignup(err)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if session != nil {
		writeJSON(w, http.StatusOK, newSessionView(session))
		return
	}
	writeJSON(w, http.StatusOK, newUserView(user))
}

// token serves the password, id_token and refresh_token grants.
func (h *handler) token(w http.ResponseWriter, r *http.Request) {
	grant := r.URL.Query().Get("grant_type")
	ctx := r.Context()

	var session *services.Session
	var err error
	switch grant {
	case "password":
		var req credentialsRequest
		if !decode(w, r, &req) {
			return
		}
		session, err = h.Users.SignInWithPassword(ctx, req.Email, req.Password)
	case "id_token":
		var req idTokenRequest
		if !decode(w, r, &req) {
			return
		}
		session, err = h.Users.SignInWithIDToken(ctx, req.Provider, req.IDToken, req.Nonce)
	case "refresh_token":
		var req refreshRequest
		if !decode(w, r, &req) {
			return
		}
		session, err = h.Users.RefreshToken(ctx, req.RefreshToken)
	default:
		writeError(w, http.StatusBadRequest, codeUnsupportedGrant, "unsupported_grant_type")
		return
	}

	h.Metrics.observeLogin(grant, err)
	if err != nil {
		if grant == "refresh_token" {
			h.failRefresh(w, r, err)
			return
		}
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(session))
}

// failRefresh reports unusable refresh tokens with 400, not 401. A 401
// would make clients retry the refresh with the same token.
func (h *handler) failRefresh(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidToken):
		writeError(w, http.StatusBadRequest, codeRefreshNotFound, "Invalid Refresh Token: Refresh Token Not Found")
	case errors.Is(err, common.ErrRefreshTokenExpired):
		writeError(w, http.StatusBadRequest, codeRefreshNotFound, "Invalid Refresh Token: Refresh Token Expired")
	default:
		h.fail(w, r, err)
	}
}

func (h *handler) recoverPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Users.Recover(r.Context(), req.Email); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (h *handler) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.Users.GetUser(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserView(u))
}

func (h *handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, codeValidation, "Password is required")
		return
	}
	u, err := h.Users.UpdatePassword(r.Context(), userIDFrom(r.Context()), req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserView(u))
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.SignOut(r.Context(), userIDFrom(r.Context())); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
