// Package httpapi is the REST surface of the backend: /auth/v1 for accounts
// and sessions, /rest/v1 for the profiles and avatars tables.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hifi-israel/sikacare/internal/common"
	"github.com/hifi-israel/sikacare/internal/logging"
	"github.com/hifi-israel/sikacare/internal/server/models"
	"github.com/hifi-israel/sikacare/internal/server/services"
)

type AuthService interface {
	SignUp(ctx context.Context, email, password string, meta map[string]any) (*services.Session, *models.User, error)
	SignInWithPassword(ctx context.Context, email, password string) (*services.Session, error)
	SignInWithIDToken(ctx context.Context, provider, idToken, nonce string) (*services.Session, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.Session, error)
	SignOut(ctx context.Context, userID string) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, password string) (*models.User, error)
	Recover(ctx context.Context, email string) error
	UserIDFromToken(token string) (string, error)
}

type ProfileService interface {
	Select(ctx context.Context, callerID, userID string) ([]models.Profile, error)
	Update(ctx context.Context, callerID, userID string, upd models.ProfileUpdate) error
}

type AvatarService interface {
	ListActive(ctx context.Context) ([]models.Avatar, error)
}

type Deps struct {
	Users    AuthService
	Profiles ProfileService
	Avatars  AvatarService
	Metrics  *Metrics
	Logger   logging.Logger

	// Health reports readiness for /healthz. Nil means always healthy.
	Health func(context.Context) error

	AnonKey       string
	AuthRateLimit int
}

type handler struct {
	Deps
}

func NewRouter(d Deps) http.Handler {
	if d.Metrics == nil {
		d.Metrics = NewMetrics()
	}
	if d.Logger == nil {
		d.Logger = logging.Nop()
	}
	h := &handler{Deps: d}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{common.AuthorizationHeaderName, common.APIKeyHeaderName, "Content-Type", "Prefer", "X-Request-Id"},
		MaxAge:         300,
	}))
	r.Use(d.Metrics.Middleware)

	r.Get("/healthz", h.healthz)
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	r.Route("/auth/v1", func(r chi.Router) {
		r.Use(requireAPIKey(d.AnonKey))

		r.Group(func(r chi.Router) {
			r.Use(rateLimit(d.AuthRateLimit))
			r.Post("/signup", h.signUp)
			r.Post("/token", h.token)
			r.Post("/recover", h.recoverPassword)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireUser(d.Users))
			r.Get("/user", h.getUser)
			r.Put("/user", h.updateUser)
			r.Post("/logout", h.logout)
		})
	})

	r.Route("/rest/v1", func(r chi.Router) {
		r.Use(requireAPIKey(d.AnonKey))
		r.Use(requireUser(d.Users))

		r.Get("/profiles", h.selectProfiles)
		r.Patch("/profiles", h.updateProfiles)
		r.Get("/avatars", h.selectAvatars)
	})

	return r
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	if h.Health != nil {
		if err := h.Health(r.Context()); err != nil {
			h.Logger.Warn(r.Context(), "health check failed", "error", err)
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// fail writes err as an API error and logs unexpected failures.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeError(w, status, code, msg)
}
