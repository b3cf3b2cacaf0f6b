package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/hifi-israel/sikacare/internal/client/client"
	"github.com/hifi-israel/sikacare/internal/client/config"
	"github.com/hifi-israel/sikacare/internal/client/google"
	"github.com/hifi-israel/sikacare/internal/client/navigation"
	"github.com/hifi-israel/sikacare/internal/client/onboarding"
	"github.com/hifi-israel/sikacare/internal/client/services"
	"github.com/hifi-israel/sikacare/internal/client/session"
	"github.com/hifi-israel/sikacare/internal/client/splash"
	"github.com/hifi-israel/sikacare/internal/cryptox"
	"github.com/hifi-israel/sikacare/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	auth     services.AuthService
	profiles services.ProfileService
	nav      *navigation.Navigator
	splash   *splash.Resolver
	reader   *bufio.Reader
	now      func() time.Time

	modeMu sync.RWMutex
	mode   Mode

	onb   *onboardingState
	intro onboarding.Intro
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	logger := logging.New(os.Stderr, c.LogLevel, "client")

	db, err := session.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		logger.Error(ctx, "error initializing session database", "error", err)
		return nil, err
	}

	apiClient := client.NewRESTClient(c.BackendURL, c.APIKey, client.WithTimeout(c.RequestTimeout))
	if c.HealthAddr != "" {
		if err := apiClient.DialHealth(c.HealthAddr); err != nil {
			logger.Warn(ctx, "health endpoint unavailable, falling back to /healthz", "error", err)
		}
	}

	provider, err := google.New(c.GoogleProvider, google.Config{
		ClientID:     c.GoogleClientID,
		ClientSecret: c.GoogleClientSecret,
		RedirectAddr: c.GoogleRedirectAddr,
		Out:          os.Stdout,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var storeOpts []session.StoreOption
	if c.SessionKeyFile != "" {
		key, err := cryptox.LoadOrCreateKey(c.SessionKeyFile)
		if err != nil {
			logger.Error(ctx, "error loading session key", "error", err)
			_ = db.Close()
			return nil, err
		}
		storeOpts = append(storeOpts, session.WithKey(key))
	}

	auth := services.NewAuthService(apiClient, session.NewSQLiteStore(db, storeOpts...), provider, logger,
		services.WithRealReset(c.RealReset))
	profiles := services.NewProfileService(apiClient, auth, logger)

	nav := navigation.New(auth)
	nav.OnChange(func(from, to navigation.Screen) {
		logger.Debug(ctx, "screen changed", "from", from.String(), "to", to.String())
	})

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		auth:     auth,
		profiles: profiles,
		nav:      nav,
		splash:   splash.NewResolver(auth, profiles, logger),
		reader:   bufio.NewReader(os.Stdin),
		now:      time.Now,
	}, nil
}

func (a *App) currentMode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

// Run resolves the start screen and runs the prompt loop until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	printlnFn("Welcome to SikaCare (type 'help' for commands)")

	dest := a.splash.ResolveDestination(ctx)
	if err := a.move(ctx, func() error { return a.nav.ResolveSplash(dest) }); err != nil {
		a.logger.Warn(ctx, "splash destination refused", "destination", dest.String(), "error", err)
		_ = a.move(ctx, func() error { return a.nav.ResolveSplash(navigation.Login) })
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close(ctx context.Context) {
	if err := a.auth.Close(ctx); err != nil {
		a.logger.Warn(ctx, "closing client", "error", err)
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) getStatus() string {
	s := ""
	if email, ok := a.auth.CurrentUserEmail(); ok {
		s = email + " "
	}
	if m := a.currentMode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.auth.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
