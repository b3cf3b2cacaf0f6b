package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hifi-israel/sikacare/internal/common"
	"github.com/hifi-israel/sikacare/internal/server/models"
	"github.com/hifi-israel/sikacare/internal/server/services"
)

const (
	testAnonKey = "anon-key"
	testToken   = "good-token"
)

var testUser = &models.User{
	ID:        "u1",
	Email:     "dana@example.com",
	Provider:  common.ProviderEmail,
	Metadata:  map[string]any{"full_name": "Dana Levi"},
	CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
}

func testSession() *services.Session {
	return &services.Session{
		AccessToken:  "access",
		TokenType:    services.TokenTypeBearer,
		ExpiresIn:    3600,
		ExpiresAt:    1748739600,
		RefreshToken: "refresh",
		User:         testUser,
	}
}

// fakeAuth records the last call and answers with the configured values.
type fakeAuth struct {
	session *services.Session
	user    *models.User
	err     error

	calls    []string
	lastArgs []string
	lastMeta map[string]any
}

func (f *fakeAuth) record(name string, args ...string) {
	f.calls = append(f.calls, name)
	f.lastArgs = args
}

func (f *fakeAuth) SignUp(ctx context.Context, email, password string, meta map[string]any) (*services.Session, *models.User, error) {
	f.record("SignUp", email, password)
	f.lastMeta = meta
	return f.session, f.user, f.err
}

func (f *fakeAuth) SignInWithPassword(ctx context.Context, email, password string) (*services.Session, error) {
	f.record("SignInWithPassword", email, password)
	return f.session, f.err
}

func (f *fakeAuth) SignInWithIDToken(ctx context.Context, provider, idToken, nonce string) (*services.Session, error) {
	f.record("SignInWithIDToken", provider, idToken, nonce)
	return f.session, f.err
}

func (f *fakeAuth) RefreshToken(ctx context.Context, refreshToken string) (*services.Session, error) {
	f.record("RefreshToken", refreshToken)
	return f.session, f.err
}

func (f *fakeAuth) SignOut(ctx context.Context, userID string) error {
	f.record("SignOut", userID)
	return f.err
}

func (f *fakeAuth) GetUser(ctx context.Context, userID string) (*models.User, error) {
	f.record("GetUser", userID)
	return f.user, f.err
}

func (f *fakeAuth) UpdatePassword(ctx context.Context, userID, password string) (*models.User, error) {
	f.record("UpdatePassword", userID, password)
	return f.user, f.err
}

func (f *fakeAuth) Recover(ctx context.Context, email string) error {
	f.record("Recover", email)
	return f.err
}

func (f *fakeAuth) UserIDFromToken(token string) (string, error) {
	if token == testToken {
		return "u1", nil
	}
	return "", common.ErrInvalidToken
}

type fakeProfiles struct {
	rows    []models.Profile
	err     error
	updates []models.ProfileUpdate
	lastIDs [2]string
}

func (f *fakeProfiles) Select(ctx context.Context, callerID, userID string) ([]models.Profile, error) {
	f.lastIDs = [2]string{callerID, userID}
	return f.rows, f.err
}

func (f *fakeProfiles) Update(ctx context.Context, callerID, userID string, upd models.ProfileUpdate) error {
	f.lastIDs = [2]string{callerID, userID}
	f.updates = append(f.updates, upd)
	return f.err
}

type fakeAvatars struct {
	list []models.Avatar
	err  error
}

func (f *fakeAvatars) ListActive(ctx context.Context) ([]models.Avatar, error) {
	return append([]models.Avatar(nil), f.list...), f.err
}

type testAPI struct {
	auth     *fakeAuth
	profiles *fakeProfiles
	avatars  *fakeAvatars
	handler  http.Handler
}

func newTestAPI(t *testing.T, rateLimit int) *testAPI {
	t.Helper()
	a := &testAPI{auth: &fakeAuth{}, profiles: &fakeProfiles{}, avatars: &fakeAvatars{}}
	a.handler = NewRouter(Deps{
		Users:         a.auth,
		Profiles:      a.profiles,
		Avatars:       a.avatars,
		Metrics:       NewMetrics(),
		AnonKey:       testAnonKey,
		AuthRateLimit: rateLimit,
	})
	return a
}

// do sends a request with the anon key and, when token is set, a bearer token.
func (a *testAPI) do(method, target, body, token string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	req.Header.Set(common.APIKeyHeaderName, testAnonKey)
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}
