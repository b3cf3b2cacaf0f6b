package services

import (
	"context"
	"errors"

	"github.com/hifi-israel/sikacare/internal/client/google"
	"github.com/hifi-israel/sikacare/internal/client/models"
)

type fakeClient struct {
	CloseErr error
	PingErr  error

	SignUpSession *models.Session
	SignUpUser    *models.User
	SignUpErr     error
	LastSignUp    map[string]any

	SignInRet *models.Session
	SignInErr error

	IDTokenRet      *models.Session
	IDTokenErr      error
	LastIDToken     string
	LastNonce       string
	LastIDProvider  string
	RefreshRet      *models.Session
	RefreshErr      error
	LastRefresh     string
	UpdatePassErr   error
	LastPassToken   string
	RecoverErr      error
	RecoverCalls    []string
	SignOutErr      error
	SignOutTokens   []string
	SelectRet       []models.Profile
	SelectErr       error
	LastSelectCol   string
	LastSelectVal   string
	LastToken       string
	UpdateErr       error
	Updates         []models.ProfileUpdate
	LastUpdateVal   string
	AvatarsRet      []models.Avatar
	AvatarsErr      error
	GetUserRet      *models.User
	GetUserErr      error
	closed          bool
	selectCallCount int
}

func (f *fakeClient) Close() error {
	f.closed = true
	return f.CloseErr
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) SignUp(ctx context.Context, email, password string, data map[string]any) (*models.Session, *models.User, error) {
	f.LastSignUp = data
	return f.SignUpSession, f.SignUpUser, f.SignUpErr
}

func (f *fakeClient) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	return f.SignInRet, f.SignInErr
}

func (f *fakeClient) SignInWithIDToken(ctx context.Context, provider, idToken, nonce string) (*models.Session, error) {
	f.LastIDProvider, f.LastIDToken, f.LastNonce = provider, idToken, nonce
	return f.IDTokenRet, f.IDTokenErr
}

func (f *fakeClient) RefreshSession(ctx context.Context, refreshToken string) (*models.Session, error) {
	f.LastRefresh = refreshToken
	return f.RefreshRet, f.RefreshErr
}

func (f *fakeClient) GetUser(ctx context.Context, accessToken string) (*models.User, error) {
	return f.GetUserRet, f.GetUserErr
}

func (f *fakeClient) UpdatePassword(ctx context.Context, accessToken, password string) error {
	f.LastPassToken = accessToken
	return f.UpdatePassErr
}

func (f *fakeClient) Recover(ctx context.Context, email string) error {
	f.RecoverCalls = append(f.RecoverCalls, email)
	return f.RecoverErr
}

func (f *fakeClient) SignOut(ctx context.Context, accessToken string) error {
	f.SignOutTokens = append(f.SignOutTokens, accessToken)
	return f.SignOutErr
}

func (f *fakeClient) SelectProfiles(ctx context.Context, accessToken, column, value string) ([]models.Profile, error) {
	f.selectCallCount++
	f.LastToken, f.LastSelectCol, f.LastSelectVal = accessToken, column, value
	return f.SelectRet, f.SelectErr
}

func (f *fakeClient) UpdateProfiles(ctx context.Context, accessToken, column, value string, update models.ProfileUpdate) error {
	f.LastToken, f.LastUpdateVal = accessToken, value
	f.Updates = append(f.Updates, update)
	return f.UpdateErr
}

func (f *fakeClient) SelectAvatars(ctx context.Context, accessToken string) ([]models.Avatar, error) {
	return f.AvatarsRet, f.AvatarsErr
}

type fakeProvider struct {
	cred *google.Credential
	err  error
}

func (p *fakeProvider) SignIn(ctx context.Context) (*google.Credential, error) {
	return p.cred, p.err
}

type failingStore struct {
	loadErr, saveErr, clearErr error
}

func (s *failingStore) Load(context.Context) (*models.Session, error) { return nil, s.loadErr }
func (s *failingStore) Save(context.Context, *models.Session) error   { return s.saveErr }
func (s *failingStore) Clear(context.Context) error                   { return s.clearErr }

var errBoom = errors.New("boom")
