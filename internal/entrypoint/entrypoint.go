// Package entrypoint wires the library service, authentication, the task
// queue and the overdue scheduler into a runnable server.
package entrypoint

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/smartlibrary/internal/auth"
	"github.com/mrlokans/smartlibrary/internal/config"
	"github.com/mrlokans/smartlibrary/internal/database"
	http_controllers "github.com/mrlokans/smartlibrary/internal/http"
	"github.com/mrlokans/smartlibrary/internal/library"
	"github.com/mrlokans/smartlibrary/internal/scheduler"
	"github.com/mrlokans/smartlibrary/internal/tasks"
)

// App holds everything a running server owns.
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	DB        *database.Database
	Library   *library.Service
	Auth      *auth.Service
	Tasks     *tasks.Client
	Scheduler *scheduler.OverdueScheduler
	Router    *gin.Engine
}

// Build opens the database and assembles the server. Close releases what
// Build opened.
func Build(cfg *config.Config, version string, logger *zap.Logger) (app *App, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	db, err := database.NewDatabase(cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app = &App{
		cfg:     cfg,
		logger:  logger,
		DB:      db,
		Library: library.NewService(db, cfg.Library, library.WithLogger(logger)),
	}
	defer func() {
		if err != nil {
			app.Close()
			app = nil
		}
	}()

	// The scan runs in-process unless the task queue takes it.
	var trigger scheduler.Trigger = scheduler.TriggerFunc(func(ctx context.Context, source string) error {
		_, err := app.Library.ScanOverdue(ctx)
		return err
	})

	if cfg.Tasks.Enabled {
		taskPath := tasks.DBPath(cfg.Database, cfg.Tasks)
		app.Tasks, err = tasks.NewClient(taskPath, tasks.ConfigFrom(cfg.Tasks), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize task queue: %w", err)
		}
		app.Tasks.Register(tasks.NewOverdueScanQueue(app.Library, logger))
		trigger = app.Tasks
		logger.Info("task queue ready", zap.String("path", taskPath), zap.Int("workers", cfg.Tasks.Workers))
	}

	if cfg.Overdue.ScanEnabled {
		if err := scheduler.ValidateSchedule(cfg.Overdue.ScanSchedule); err != nil {
			return nil, fmt.Errorf("invalid OVERDUE_SCAN_SCHEDULE %q: %w", cfg.Overdue.ScanSchedule, err)
		}
		app.Scheduler = scheduler.NewOverdueScheduler(trigger, cfg.Overdue, cfg.Library.Location(), logger)
	}

	routerCfg := http_controllers.RouterConfig{
		Library:        app.Library,
		Database:       db,
		Logger:         logger,
		OverdueTrigger: trigger,
		Version:        version,
	}
	if app.Tasks != nil {
		routerCfg.TaskQueue = app.Tasks
	}
	if app.Scheduler != nil {
		routerCfg.OverdueSchedule = app.Scheduler
	}

	if cfg.Auth.Mode == config.AuthModeLocal {
		logger.Info("authentication mode: local")

		app.Auth, err = auth.NewService(db.DB, cfg.Auth, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize auth service: %w", err)
		}
		sessionManager, err := auth.NewSessionManager(db, cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize session manager: %w", err)
		}
		csrfSecret, generated := sessionSecret(cfg.Auth.SessionSecret)
		if generated {
			logger.Warn("generated session secret, set AUTH_SESSION_SECRET to persist")
		}

		routerCfg.AuthService = app.Auth
		routerCfg.SessionManager = sessionManager
		routerCfg.AuthMiddleware = auth.NewMiddleware(app.Auth, sessionManager, cfg.Auth)
		routerCfg.CSRFSecret = csrfSecret
		routerCfg.SecureCookies = cfg.Auth.SecureCookies

		users, err := app.Auth.ListUsers(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}
		if len(users) == 0 {
			logger.Warn("no users found, create one with 'smartlibrary user create'")
		}
	} else {
		logger.Info("authentication mode: none (no authentication required)")
	}

	app.Router = http_controllers.NewRouter(routerCfg)
	return app, nil
}

// sessionSecret decodes a hex secret, uses any other value as raw bytes, and
// generates a random key when none is configured.
func sessionSecret(configured string) ([]byte, bool) {
	if configured == "" {
		return securecookie.GenerateRandomKey(32), true
	}
	if secret, err := hex.DecodeString(configured); err == nil && len(secret) > 0 {
		return secret, false
	}
	return []byte(configured), false
}

// Run serves HTTP and runs the task queue and scheduler until ctx is
// cancelled, then shuts everything down within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.HTTP.Host, a.cfg.HTTP.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		a.logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	if a.Tasks != nil {
		a.Tasks.Start(gctx)
	}
	if a.Scheduler != nil {
		if err := a.Scheduler.Start(gctx); err != nil {
			cancel()
			return errors.Join(err, group.Wait())
		}
	}

	group.Go(func() error {
		<-gctx.Done()

		timeout := time.Duration(a.cfg.Global.ShutdownTimeoutInSeconds) * time.Second
		a.logger.Info("shutting down", zap.Duration("timeout", timeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if a.Scheduler != nil {
			a.Scheduler.Stop()
		}
		if a.Tasks != nil {
			a.Tasks.Stop(shutdownCtx)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	err := group.Wait()
	a.logger.Info("server exiting")
	return err
}

// Close releases the task queue and the database.
func (a *App) Close() error {
	var errs []error
	if a.Tasks != nil {
		if err := a.Tasks.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close task queue: %w", err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
