package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/prazos/internal/cli"
	"github.com/klokku/prazos/internal/config"
	"github.com/klokku/prazos/internal/database"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Application wires configuration, database, router, and server lifecycle.
type Application struct {
	cfg  config.Application
	deps *Dependencies
}

// NewApplication loads the configuration and wires the database-free core used by the CLI.
func NewApplication(configPath string) (*Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	deps := BuildDependencies(context.Background(), nil, cfg)
	return &Application{cfg: cfg, deps: deps}, nil
}

// Command returns the CLI bound to the application.
func (a *Application) Command() *cli.App {
	return &cli.App{
		Calendar:   a.deps.Calendar,
		Arithmetic: a.deps.Arithmetic,
		Deadlines:  a.deps.DeadlineService,
		ExtraDates: a.deps.ExtraDates,
		Timeline:   a.deps.TimelineDefaults,
		Clock:      a.deps.Clock,
		Serve:      a.Run,
	}
}

// Run opens the database when enabled, starts the HTTP server and blocks until ctx is done.
func (a *Application) Run(ctx context.Context) error {
	var db *pgxpool.Pool
	if a.cfg.Database.Enabled {
		var err error
		db, err = database.Open(ctx, a.cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := database.Migrate(a.cfg.Database); err != nil {
			return err
		}
	} else {
		log.Info("Database disabled, extra holidays come from configuration only")
	}

	srv := &http.Server{
		Handler:      NewRouter(ctx, db, a.cfg),
		Addr:         a.cfg.Server.Addr,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	errs := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", srv.Addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// NewRouter builds the dependencies for db (nil when disabled) and the full HTTP handler.
func NewRouter(ctx context.Context, db *pgxpool.Pool, cfg config.Application) *mux.Router {
	r := mux.NewRouter()

	deps := BuildDependencies(ctx, db, cfg)

	SetupMiddleware(r)

	RegisterRoutes(r, deps, db)

	return r
}
