// Package google verifies Google ID tokens presented on
// /auth/v1/token?grant_type=id_token.
package google

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/zitadel/oidc/v3/pkg/client/rp"
	"github.com/zitadel/oidc/v3/pkg/oidc"
)

const (
	Issuer    = "https://accounts.google.com"
	JWKSURL   = "https://www.googleapis.com/oauth2/v3/certs"
	altIssuer = "accounts.google.com"
)

var ErrInvalidIDToken = errors.New("invalid id token")

// Identity is what the backend keeps from a verified token.
type Identity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

type Verifier interface {
	// Verify checks signature, issuer, audience, expiry and that the token
	// nonce is the SHA-256 of rawNonce.
	Verify(ctx context.Context, idToken, rawNonce string) (*Identity, error)
}

type nonceKey struct{}

// verifyIDToken is a seam for tests.
var verifyIDToken = rp.VerifyIDToken[*oidc.IDTokenClaims]

type IDTokenVerifier struct {
	verifiers []*rp.IDTokenVerifier
}

// NewIDTokenVerifier returns a verifier for tokens issued to clientID. Keys
// are fetched from jwksURL and cached by the key set.
func NewIDTokenVerifier(clientID, jwksURL string) *IDTokenVerifier {
	keySet := rp.NewRemoteKeySet(&http.Client{Timeout: 10 * time.Second}, jwksURL)
	nonce := rp.WithNonce(func(ctx context.Context) string {
		n, _ := ctx.Value(nonceKey{}).(string)
		return n
	})

	// Google uses both issuer spellings.
	v := &IDTokenVerifier{}
	for _, iss := range []string{Issuer, altIssuer} {
		v.verifiers = append(v.verifiers, rp.NewIDTokenVerifier(iss, clientID, keySet, nonce))
	}
	return v
}

func (v *IDTokenVerifier) Verify(ctx context.Context, idToken, rawNonce string) (*Identity, error) {
	if idToken == "" {
		return nil, ErrInvalidIDToken
	}
	expected := ""
	if rawNonce != "" {
		expected = HashNonce(rawNonce)
	}
	ctx = context.WithValue(ctx, nonceKey{}, expected)

	var firstErr error
	for _, iv := range v.verifiers {
		claims, err := verifyIDToken(ctx, idToken, iv)
		if err == nil {
			return identityFromClaims(claims)
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, firstErr)
}

func identityFromClaims(c *oidc.IDTokenClaims) (*Identity, error) {
	if c == nil || c.Subject == "" || c.Email == "" {
		return nil, fmt.Errorf("%w: subject or email missing", ErrInvalidIDToken)
	}
	return &Identity{
		Subject:       c.Subject,
		Email:         c.Email,
		EmailVerified: bool(c.EmailVerified),
		Name:          c.Name,
	}, nil
}

// HashNonce returns the lowercase hex SHA-256 of raw, which is what clients
// put in the authorization request.
func HashNonce(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
