// Package google obtains a Google ID token for the signed-in user. The token
// is then exchanged for a backend session by the auth service.
//
// The way the token is obtained depends on the platform: desktop builds run
// an OAuth authorization-code flow in the system browser, platforms without
// an implementation return ErrGoogleUnsupported.
package google

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

const (
	KindBrowser     = "browser"
	KindUnsupported = "unsupported"

	Issuer = "https://accounts.google.com"
)

var (
	ErrGoogleUnsupported = errors.New("google sign-in is not available on this platform")
	// ErrCredential covers a cancelled, denied or misconfigured sign-in.
	ErrCredential = errors.New("google credential error")
	// ErrTokenParsing means Google answered but the ID token could not be
	// obtained or verified.
	ErrTokenParsing = errors.New("google token parsing error")
)

// Credential is what the backend needs to sign the user in: the ID token and
// the raw nonce whose SHA-256 was embedded in it.
type Credential struct {
	IDToken string
	Nonce   string
}

type Provider interface {
	SignIn(ctx context.Context) (*Credential, error)
}

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectAddr string
	Timeout      time.Duration
	Out          io.Writer
}

// New returns the provider for kind.
func New(kind string, cfg Config) (Provider, error) {
	switch kind {
	case KindBrowser:
		return NewBrowserProvider(cfg), nil
	case KindUnsupported:
		return UnsupportedProvider{}, nil
	default:
		return nil, fmt.Errorf("unknown google provider %q", kind)
	}
}

// HashNonce returns the lowercase hex SHA-256 of raw. The hash goes to
// Google, the raw value to the backend.
func HashNonce(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

type UnsupportedProvider struct{}

func (UnsupportedProvider) SignIn(context.Context) (*Credential, error) {
	return nil, ErrGoogleUnsupported
}

func defaultOut(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
