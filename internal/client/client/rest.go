package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hifi-israel/sikacare/internal/client/models"
	"github.com/hifi-israel/sikacare/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	authPath = "/auth/v1"
	restPath = "/rest/v1"
)

// RESTClient talks to a GoTrue-style auth API and a PostgREST-style table
// API under one base URL. Every request carries the public API key; requests
// made on behalf of a user also carry the user's access token.
type RESTClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	healthConn *grpc.ClientConn
	health     healthpb.HealthClient
}

type Option func(*RESTClient)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(r *RESTClient) { r.httpClient = c }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(r *RESTClient) { r.httpClient.Timeout = d }
}

// WithHealthClient makes Ping use the given gRPC health client instead of
// GET /healthz.
func WithHealthClient(h healthpb.HealthClient) Option {
	return func(r *RESTClient) { r.health = h }
}

func NewRESTClient(baseURL, apiKey string, opts ...Option) *RESTClient {
	c := &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// DialHealth connects Ping to the backend's gRPC health service at addr.
// The connection is lazy, so an unreachable server only shows up in Ping.
func (c *RESTClient) DialHealth(addr string) error {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return err
	}
	c.healthConn = conn
	c.health = healthpb.NewHealthClient(conn)
	return nil
}

func (c *RESTClient) Close() error {
	if c.healthConn != nil {
		return c.healthConn.Close()
	}
	return nil
}

func (c *RESTClient) Ping(ctx context.Context) error {
	if c.health != nil {
		resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			return ErrUnavailable
		}
		return nil
	}
	return c.do(ctx, http.MethodGet, "/healthz", nil, "", nil, nil)
}

type credentialsRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data,omitempty"`
}

// signUpResponse is either a full session (confirmed user) or the bare user
// (confirmation pending).
type signUpResponse struct {
	models.Session
	models.User
}

func (c *RESTClient) SignUp(ctx context.Context, email, password string, data map[string]any) (*models.Session, *models.User, error) {
	var resp signUpResponse
	req := credentialsRequest{Email: email, Password: password, Data: data}
	if err := c.do(ctx, http.MethodPost, authPath+"/signup", nil, "", req, &resp); err != nil {
		return nil, nil, err
	}

	if resp.AccessToken == "" {
		u := resp.User
		return nil, &u, nil
	}
	s := resp.Session
	return &s, s.User, nil
}

func (c *RESTClient) token(ctx context.Context, grant string, body any) (*models.Session, error) {
	var s models.Session
	q := url.Values{"grant_type": {grant}}
	if err := c.do(ctx, http.MethodPost, authPath+"/token", q, "", body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *RESTClient) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	return c.token(ctx, "password", credentialsRequest{Email: email, Password: password})
}

func (c *RESTClient) SignInWithIDToken(ctx context.Context, provider, idToken, nonce string) (*models.Session, error) {
	body := map[string]string{"provider": provider, "id_token": idToken, "nonce": nonce}
	return c.token(ctx, "id_token", body)
}

func (c *RESTClient) RefreshSession(ctx context.Context, refreshToken string) (*models.Session, error) {
	return c.token(ctx, "refresh_token", map[string]string{"refresh_token": refreshToken})
}

func (c *RESTClient) GetUser(ctx context.Context, accessToken string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, authPath+"/user", nil, accessToken, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *RESTClient) UpdatePassword(ctx context.Context, accessToken, password string) error {
	return c.do(ctx, http.MethodPut, authPath+"/user", nil, accessToken, map[string]string{"password": password}, nil)
}

func (c *RESTClient) Recover(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, authPath+"/recover", nil, "", map[string]string{"email": email}, nil)
}

func (c *RESTClient) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, authPath+"/logout", nil, accessToken, nil, nil)
}

func eq(column, value string) url.Values {
	return url.Values{column: {"eq." + value}}
}

func (c *RESTClient) SelectProfiles(ctx context.Context, accessToken, column, value string) ([]models.Profile, error) {
	q := eq(column, value)
	q.Set("select", "*")
	q.Set("limit", "1")

	var rows []models.Profile
	if err := c.do(ctx, http.MethodGet, restPath+"/profiles", q, accessToken, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *RESTClient) UpdateProfiles(ctx context.Context, accessToken, column, value string, update models.ProfileUpdate) error {
	return c.do(ctx, http.MethodPatch, restPath+"/profiles", eq(column, value), accessToken, update, nil)
}

func (c *RESTClient) SelectAvatars(ctx context.Context, accessToken string) ([]models.Avatar, error) {
	q := eq("active", "true")
	q.Set("select", "*")
	q.Set("order", "id.asc")

	var rows []models.Avatar
	if err := c.do(ctx, http.MethodGet, restPath+"/avatars", q, accessToken, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// do sends one JSON request. body and out may be nil. Without an access
// token the API key doubles as the bearer token, as hosted backends expect.
func (c *RESTClient) do(ctx context.Context, method, path string, query url.Values, accessToken string, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return err
	}
	req.Header.Set(common.APIKeyHeaderName, c.apiKey)
	bearer := accessToken
	if bearer == "" {
		bearer = c.apiKey
	}
	req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+bearer)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPatch {
		req.Header.Set("Prefer", "return=minimal")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError reads the error body. Auth endpoints answer with msg or
// error_description, table endpoints with message.
func decodeError(resp *http.Response) error {
	var body struct {
		Code             any    `json:"code"`
		ErrorCode        string `json:"error_code"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(raw, &body)

	apiErr := &APIError{Status: resp.StatusCode, Code: body.ErrorCode}
	for _, m := range []string{body.Msg, body.ErrorDescription, body.Message, body.Error} {
		if m != "" {
			apiErr.Message = m
			break
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
