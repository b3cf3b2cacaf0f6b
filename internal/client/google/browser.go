package google

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/hifi-israel/sikacare/internal/common"
	"github.com/zitadel/oidc/v3/pkg/client/rp"
	"github.com/zitadel/oidc/v3/pkg/oidc"
)

const callbackPath = "/callback"

var (
	newRelyingParty = rp.NewRelyingPartyOIDC

	buildAuthURL = func(state string, party rp.RelyingParty, codeChallenge, hashedNonce string) string {
		return rp.AuthURL(state, party,
			rp.WithCodeChallenge(codeChallenge),
			rp.AuthURLOpt(rp.WithURLParam("nonce", hashedNonce)),
		)
	}

	exchangeCode = func(ctx context.Context, code string, party rp.RelyingParty, codeVerifier string) (string, error) {
		tokens, err := rp.CodeExchange[*oidc.IDTokenClaims](ctx, code, party, rp.WithCodeVerifier(codeVerifier))
		if err != nil {
			return "", err
		}
		return tokens.IDToken, nil
	}

	openURL = openInBrowser
)

// BrowserProvider runs the authorization-code flow with PKCE in the system
// browser and receives the redirect on a loopback HTTP listener.
type BrowserProvider struct {
	issuer       string
	clientID     string
	clientSecret string
	redirectAddr string
	timeout      time.Duration
	out          io.Writer
}

func NewBrowserProvider(cfg Config) *BrowserProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &BrowserProvider{
		issuer:       Issuer,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectAddr: cfg.RedirectAddr,
		timeout:      timeout,
		out:          defaultOut(cfg.Out),
	}
}

type callbackResult struct {
	code string
	err  error
}

func (p *BrowserProvider) SignIn(ctx context.Context) (*Credential, error) {
	if p.clientID == "" {
		return nil, fmt.Errorf("%w: client id is not configured", ErrCredential)
	}

	rawNonce, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, err
	}
	state, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, err
	}
	codeVerifier, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, err
	}
	hashedNonce := HashNonce(rawNonce)

	ln, err := net.Listen("tcp", p.redirectAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: listen on %s: %v", ErrCredential, p.redirectAddr, err)
	}
	redirectURI := "http://" + ln.Addr().String() + callbackPath

	party, err := newRelyingParty(ctx, p.issuer, p.clientID, p.clientSecret, redirectURI,
		[]string{oidc.ScopeOpenID, oidc.ScopeEmail, oidc.ScopeProfile},
		rp.WithVerifierOpts(rp.WithNonce(func(context.Context) string { return hashedNonce })),
	)
	if err != nil {
		_ = ln.Close()
		return nil, fmt.Errorf("%w: %v", ErrCredential, err)
	}

	results := make(chan callbackResult, 1)
	srv := &http.Server{
		Handler:           callbackHandler(state, results),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() { _ = srv.Serve(ln) }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	authURL := buildAuthURL(state, party, oidc.NewSHACodeChallenge(codeVerifier), hashedNonce)
	fmt.Fprintf(p.out, "Continue in your browser. If it did not open, visit:\n%s\n", authURL)
	if err := openURL(authURL); err != nil {
		fmt.Fprintf(p.out, "could not open browser: %v\n", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var res callbackResult
	select {
	case res = <-results:
	case <-waitCtx.Done():
		return nil, fmt.Errorf("%w: %v", ErrCredential, waitCtx.Err())
	}
	if res.err != nil {
		return nil, res.err
	}

	idToken, err := exchangeCode(ctx, res.code, party, codeVerifier)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenParsing, err)
	}
	if idToken == "" {
		return nil, fmt.Errorf("%w: no id_token in response", ErrTokenParsing)
	}

	return &Credential{IDToken: idToken, Nonce: rawNonce}, nil
}

// callbackHandler delivers the first redirect it sees to results.
func callbackHandler(state string, results chan<- callbackResult) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var res callbackResult
		switch {
		case q.Get("state") != state:
			res.err = fmt.Errorf("%w: state mismatch", ErrCredential)
		case q.Get("error") != "":
			res.err = fmt.Errorf("%w: %s", ErrCredential, q.Get("error"))
		case q.Get("code") == "":
			res.err = fmt.Errorf("%w: missing authorization code", ErrCredential)
		default:
			res.code = q.Get("code")
		}

		select {
		case results <- res:
		default:
		}

		if res.err != nil {
			http.Error(w, "Sign-in failed. You can close this window.", http.StatusBadRequest)
			return
		}
		_, _ = io.WriteString(w, "Signed in. You can close this window and return to SikaCare.")
	})
	return mux
}

func openInBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
