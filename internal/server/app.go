// Package server initializes and runs the library API server.
// It opens storage, applies migrations, seeds the librarian account, wires
// the cache and event publisher, and serves HTTP until the context ends.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/libkeeper/internal/logging"
	"github.com/dmitrijs2005/libkeeper/internal/server/cache"
	"github.com/dmitrijs2005/libkeeper/internal/server/config"
	"github.com/dmitrijs2005/libkeeper/internal/server/events"
	"github.com/dmitrijs2005/libkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/libkeeper/internal/server/services"
)

const connectTimeout = 10 * time.Second

// Seams for tests.
var (
	openDB         = repomanager.Open
	newRepoManager = repomanager.NewPostgresRepositoryManager
	newRedisClient = cache.NewRedisClient
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	repos     repomanager.RepositoryManager
	cache     *cache.Cache
	publisher events.Publisher
	closers   []func() error
}

func NewApp(c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stdout, c.LogFormat, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	app := &App{config: c, logger: logger, repos: newRepoManager()}

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.db = db
	app.closers = append(app.closers, db.Close)

	if err := app.initCache(ctx); err != nil {
		app.close(ctx)
		return nil, err
	}
	app.initPublisher()

	return app, nil
}

func (app *App) initCache(ctx context.Context) error {
	if app.config.RedisAddr == "" {
		app.logger.Info(ctx, "Using in-memory cache")
		app.cache = cache.New(cache.NewMemoryStore(), app.logger)
		return nil
	}

	client, err := newRedisClient(ctx, app.config.RedisAddr, app.config.RedisPassword, app.config.RedisDB)
	if err != nil {
		return fmt.Errorf("cache init error: %w", err)
	}
	app.closers = append(app.closers, client.Close)
	app.logger.Info(ctx, "Using redis cache", "address", app.config.RedisAddr)
	app.cache = cache.New(cache.NewRedisStore(client), app.logger)
	return nil
}

func (app *App) initPublisher() {
	if len(app.config.KafkaBrokers) == 0 {
		app.publisher = events.NopPublisher{}
		return
	}
	app.publisher = events.NewKafkaPublisher(events.NewKafkaWriter(app.config.KafkaBrokers, app.config.KafkaTopic))
	app.closers = append(app.closers, app.publisher.Close)
}

// close releases resources in reverse order of acquisition.
func (app *App) close(ctx context.Context) {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			app.logger.Warn(ctx, "close failed", "error", err)
		}
	}
	app.closers = nil
}

func (app *App) services() (httpapi.Services, *services.UserService) {
	c, ttl := app.cache, app.config.CacheTTL
	us := services.NewUserService(app.db, app.repos, app.config, app.logger)
	return httpapi.Services{
		Users:         us,
		Sections:      services.NewSectionService(app.db, app.repos, c, ttl),
		Ebooks:        services.NewEbookService(app.db, app.repos, c, ttl),
		EbookRequests: services.NewEbookRequestService(app.db, app.repos, c, app.publisher, app.logger),
		Feedback:      services.NewFeedbackService(app.db, app.repos, c),
		Stats:         services.NewStatsService(app.db, app.repos),
	}, us
}

// Run migrates the schema, seeds the librarian and serves until ctx is done.
func (app *App) Run(ctx context.Context) error {
	defer app.close(ctx)

	app.logger.Info(ctx, "Starting app...")

	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		return err
	}

	svc, us := app.services()
	if err := us.EnsureLibrarian(ctx); err != nil {
		return fmt.Errorf("seed librarian: %w", err)
	}

	return httpapi.NewServer(app.config, app.logger, svc).Run(ctx)
}
