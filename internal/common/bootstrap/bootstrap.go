package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/AlibekovAA/movie-watchlist/internal/common/config"
	"github.com/AlibekovAA/movie-watchlist/internal/common/constants"
	"github.com/AlibekovAA/movie-watchlist/internal/common/db"
	commonerrors "github.com/AlibekovAA/movie-watchlist/internal/common/errors"
	"github.com/AlibekovAA/movie-watchlist/internal/common/logger"
	commonsqlite "github.com/AlibekovAA/movie-watchlist/internal/common/sqlite"
	movierepo "github.com/AlibekovAA/movie-watchlist/internal/movie/repository"
	userrepo "github.com/AlibekovAA/movie-watchlist/internal/user/repository"
)

// App holds the process-wide dependencies shared by every router.
type App struct {
	Log       *logger.Logger
	Config    config.APIConfig
	UserRepo  userrepo.Repository
	MovieRepo movierepo.Repository

	closers []func()
}

// NewApp loads configuration, opens the configured store and applies its
// migrations. ctx bounds background pool metrics.
func NewApp(ctx context.Context, serviceName string) (*App, error) {
	log, err := initializeLogger(serviceName)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.LoadAPIConfig()
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.LogLevel != "" {
		log.SetLevel(cfg.LogLevel)
	}

	app := &App{Log: log, Config: cfg}
	app.closers = append(app.closers, func() { _ = log.Close() })

	if err := app.openStore(ctx); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

func (a *App) openStore(ctx context.Context) error {
	switch a.Config.DatabaseDriver {
	case config.DriverPostgres:
		return a.openPostgres(ctx)
	case config.DriverSQLite:
		return a.openSQLite(ctx)
	default:
		return fmt.Errorf("%w: %q", commonerrors.ErrUnsupportedDriver, a.Config.DatabaseDriver)
	}
}

func (a *App) openPostgres(ctx context.Context) error {
	pool, err := db.NewPool(ctx, a.Log, a.Config.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database pool: %w", err)
	}
	a.closers = append([]func(){pool.Close}, a.closers...)

	if a.Config.RunMigrations {
		if err := db.RunMigrations(ctx, pool); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		a.Log.Info("postgres migrations applied")
	}

	db.StartPoolMetrics(ctx, pool, constants.DBPoolMetricsInterval)

	a.UserRepo = userrepo.NewPgRepository(pool)
	a.MovieRepo = movierepo.NewPgRepository(pool)
	return nil
}

func (a *App) openSQLite(ctx context.Context) error {
	store, err := commonsqlite.Open(ctx, a.Config.SQLitePath)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	a.closers = append([]func(){func() { _ = store.Close() }}, a.closers...)

	if a.Config.RunMigrations {
		if err := commonsqlite.RunMigrations(store.Writer); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		a.Log.Infof("sqlite migrations applied path=%s", a.Config.SQLitePath)
	}

	a.UserRepo = userrepo.NewSQLiteRepository(store)
	a.MovieRepo = movierepo.NewSQLiteRepository(store)
	return nil
}

// Close releases the store and then the logger.
func (a *App) Close() {
	for _, c := range a.closers {
		c()
	}
	a.closers = nil
}

func initializeLogger(serviceName string) (*logger.Logger, error) {
	return logger.New(os.Getenv("LOG_DIR"), serviceName, os.Getenv("LOG_LEVEL"))
}
