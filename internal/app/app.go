package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/haguru/localauth/config"
	"github.com/haguru/localauth/internal/credstore"
	"github.com/haguru/localauth/internal/interfaces"
	"github.com/haguru/localauth/internal/metrics"
	"github.com/haguru/localauth/internal/middleware"
	"github.com/haguru/localauth/internal/routes"
	"github.com/haguru/localauth/internal/server"
	"github.com/haguru/localauth/internal/userservice"
	"github.com/haguru/localauth/pkg/databases/memory"
	"github.com/haguru/localauth/pkg/databases/mongo"
	"github.com/haguru/localauth/pkg/databases/postgres"
	"github.com/haguru/localauth/pkg/databases/redis"
	"github.com/haguru/localauth/pkg/databases/sqlite"
	pkgmetrics "github.com/haguru/localauth/pkg/metrics"
	"github.com/haguru/localauth/pkg/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

const ShutdownTimeout = 10 * time.Second

// App represents the main application, containing server and configuration.
type App struct {
	Server      interfaces.Server
	Config      *config.ServiceConfig
	Logger      interfaces.Logger
	KV          interfaces.KVStore
	UserService *userservice.UserService
	Metrics     interfaces.Metrics
}

// NewApp loads the configuration and wires storage, the user service and
// the HTTP routes.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger := NewLogger(cfg)

	svc, kv, err := NewUserService(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:      cfg,
		Logger:      logger,
		KV:          kv,
		UserService: svc,
		Server:      server.NewServer(cfg.Host, cfg.Port, logger),
		Metrics:     pkgmetrics.NewMetrics(cfg.ServiceName),
	}
	metrics.Register(app.Metrics)

	if err := app.initializeRoutes(ctx); err != nil {
		_ = kv.Close(ctx)
		return nil, err
	}
	return app, nil
}

// NewLogger builds the service logger from the config.
func NewLogger(cfg *config.ServiceConfig) interfaces.Logger {
	var logger interfaces.Logger
	if cfg.LogFile != "" {
		logger = zerolog.NewZerologLoggerWithFile(cfg.ServiceName, cfg.LogFile)
	} else {
		logger = zerolog.NewZerologLogger(cfg.ServiceName)
	}
	logger.SetLevel(cfg.LogLevel)
	return logger
}

// NewUserService opens the configured backend and builds the user service on
// top of it. The caller owns the returned KVStore and must close it.
func NewUserService(ctx context.Context, cfg *config.ServiceConfig, logger interfaces.Logger) (*userservice.UserService, interfaces.KVStore, error) {
	codec, err := credstore.NewPasswordCodec(cfg.PasswordScheme)
	if err != nil {
		return nil, nil, err
	}

	kv, err := OpenKVStore(ctx, &cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize %s storage: %w", cfg.Storage.Type, err)
	}
	logger.Info("Storage ready", "type", cfg.Storage.Type)

	store := credstore.NewStore(kv, logger,
		credstore.WithPasswordCodec(codec),
		credstore.WithKeys(cfg.Storage.UsersKey, cfg.Storage.MarkerKey),
	)
	return userservice.NewUserService(store, logger), kv, nil
}

// OpenKVStore connects the backend selected by storage.Type.
func OpenKVStore(ctx context.Context, storage *config.Storage) (interfaces.KVStore, error) {
	switch storage.Type {
	case config.StorageMemory:
		return memory.NewMemoryClient(), nil

	case config.StorageSQLite:
		client, err := sqlite.NewSQLiteClient(ctx, storage.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return client, nil

	case config.StorageRedis:
		r := storage.Redis
		client, err := redis.NewRedisClient(ctx, r.Addr, r.Password, r.DB, r.KeyPrefix)
		if err != nil {
			return nil, err
		}
		return client, nil

	case config.StorageMongoDB:
		client := mongo.NewMongoDB(&storage.MongoDB)
		if err := client.Connect(ctx, storage.MongoDB.DSN); err != nil {
			_ = client.Close(ctx)
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		return client, nil

	case config.StoragePostgres:
		opts := storage.Postgres.Options
		client := postgres.NewPostgresDatabaseClient(opts.MaxOpenConns, opts.MaxIdleConns, opts.ConnMaxLifetime)
		if err := client.Connect(ctx, storage.Postgres.DSN); err != nil {
			_ = client.Close(ctx)
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storage.Type)
	}
}

func (app *App) initializeRoutes(ctx context.Context) error {
	route := routes.NewRoute(app.Metrics, app.UserService, app.Logger, structValidator.New())

	if n, err := app.UserService.CountUsers(ctx); err == nil {
		app.Metrics.SetGauge(metrics.RegisteredUsers, float64(n))
	}

	limiter := rate.NewLimiter(rate.Limit(app.Config.RateLimit.RequestsPerSecond), app.Config.RateLimit.Burst)
	login := middleware.RateLimitHandlerFunc(limiter, route.LoginRateLimited, route.Login)

	metricsHandler := promhttp.HandlerFor(app.Metrics.GetRegistry(), promhttp.HandlerOpts{})
	tracedMetricsHandler := otelhttp.NewHandler(metricsHandler, routes.MetricsRouteAPI)

	handlers := []struct {
		route   string
		handler func(w http.ResponseWriter, r *http.Request)
	}{
		{routes.MetricsRouteAPI, tracedMetricsHandler.ServeHTTP},
		{routes.RegisterRouteAPI, route.Register},
		{routes.LoginRouteAPI, login},
		{routes.ValidateRouteAPI, route.Validate},
		{routes.RememberedRouteAPI, route.Remembered},
		{routes.ViewRouteAPI, route.View},
	}
	for _, h := range handlers {
		if err := app.Server.AddRoute(h.route, h.handler); err != nil {
			return fmt.Errorf("failed to add %s route: %w", h.route, err)
		}
	}

	app.Server.Use(middleware.RequestID(app.Logger))
	return nil
}

// Run serves HTTP until ctx is canceled, then shuts down and closes storage.
func (app *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Server.ListenAndServe()
	}()

	var serveErr error
	select {
	case serveErr = <-errCh:
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		serveErr = errors.Join(app.Server.Shutdown(shutdownCtx), <-errCh)
	}

	if err := app.KV.Close(context.Background()); err != nil {
		app.Logger.Warn("Failed to close storage", "error", err)
	}
	if serveErr != nil {
		return fmt.Errorf("failed to start server: %w", serveErr)
	}
	return nil
}
