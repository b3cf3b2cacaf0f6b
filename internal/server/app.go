// Package server wires the backend together: database and migrations,
// services, the REST API and the gRPC health service.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hifi-israel/sikacare/internal/logging"
	"github.com/hifi-israel/sikacare/internal/server/config"
	"github.com/hifi-israel/sikacare/internal/server/google"
	"github.com/hifi-israel/sikacare/internal/server/httpapi"
	"github.com/hifi-israel/sikacare/internal/server/repositories/repomanager"
	"github.com/hifi-israel/sikacare/internal/server/services"

	gs "github.com/hifi-israel/sikacare/internal/server/grpc"
)

const tokenPurgeInterval = time.Hour

// seams for tests
var (
	openDB         = repomanager.OpenPostgres
	newRepoManager = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	userService    *services.UserService
	profileService *services.ProfileService
	avatarService  *services.AvatarService
	metrics        *httpapi.Metrics
}

// NewApp opens the database, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel, "server")

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	var verifier google.Verifier
	if c.GoogleClientID != "" {
		verifier = google.NewIDTokenVerifier(c.GoogleClientID, google.JWKSURL)
	} else {
		logger.Warn(ctx, "google sign-in disabled: no client id configured")
	}

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		userService:    services.NewUserService(db, rm, c, verifier, logger),
		profileService: services.NewProfileService(db, rm),
		avatarService:  services.NewAvatarService(db, rm, c),
		metrics:        httpapi.NewMetrics(),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) deps() httpapi.Deps {
	return httpapi.Deps{
		Users:         app.userService,
		Profiles:      app.profileService,
		Avatars:       app.avatarService,
		Metrics:       app.metrics,
		Logger:        app.logger.With("module", "http"),
		Health:        app.db.PingContext,
		AnonKey:       app.config.AnonKey,
		AuthRateLimit: app.config.AuthRateLimit,
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.HTTPAddr, httpapi.NewRouter(app.deps()), app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.HealthAddr, app.logger, app.db.PingContext)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// purgeExpiredTokens removes expired refresh tokens once per interval.
func (app *App) purgeExpiredTokens(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			n, err := app.userService.PurgeExpiredTokens(ctx, t)
			if err != nil {
				app.logger.Warn(ctx, "refresh token purge failed", "error", err)
				continue
			}
			app.logger.Debug(ctx, "refresh tokens purged", "count", n)
		}
	}
}

// Run blocks until a signal arrives, ctx is cancelled or a server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.purgeExpiredTokens(ctx, tokenPurgeInterval)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
