package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mercata/affinity/internal/catalog"
	"github.com/mercata/affinity/internal/config"
	"github.com/mercata/affinity/internal/handlers"
	"github.com/mercata/affinity/internal/messaging"
	"github.com/mercata/affinity/internal/middleware"
	"github.com/mercata/affinity/internal/services"
)

type App struct {
	config   *config.Config
	logger   *logrus.Logger
	catalog  *catalog.Catalog
	redis    *redis.Client
	pg       *pgxpool.Pool
	events   *messaging.EventPublisher
	services *services.Services
	handlers *handlers.Handlers
	router   *gin.Engine
}

func New(cfg *config.Config) (*App, error) {
	app := &App{
		config: cfg,
		logger: setupLogger(cfg),
	}

	if err := app.loadCatalog(); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	if cfg.Redis.URL != "" {
		app.redis = redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			PoolSize:     cfg.Redis.PoolSize,
			ReadTimeout:  cfg.Redis.Timeout,
			WriteTimeout: cfg.Redis.Timeout,
		})
	} else {
		app.logger.Info("Redis not configured, recommendation store disabled")
	}

	app.events = messaging.NewEventPublisher(cfg, app.logger)
	app.services = services.New(cfg, app.logger, app.catalog, app.redis)

	metrics := services.NewMetrics(prometheus.DefaultRegisterer)
	app.handlers = handlers.New(app.logger, app.services, app.events, metrics)

	app.setupRouter()

	return app, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application...")

	if err := a.events.Close(); err != nil {
		a.logger.WithError(err).Error("Error closing event publisher")
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.WithError(err).Error("Error closing redis client")
		}
	}
	if a.pg != nil {
		a.pg.Close()
	}

	return nil
}

// loadCatalog builds the immutable snapshot every service reads from,
// either from the JSON data files or from postgres.
func (a *App) loadCatalog() error {
	switch a.config.Catalog.Source {
	case "", "file":
		cat, err := catalog.NewLoader(a.logger).Load(a.config.Catalog.DataDir)
		if err != nil {
			return err
		}
		a.catalog = cat
		return nil

	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), a.config.Catalog.ConnectTimeout)
		defer cancel()

		pool, err := pgxpool.New(ctx, a.config.Catalog.PostgresURL)
		if err != nil {
			return fmt.Errorf("failed to create postgres pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return fmt.Errorf("failed to ping postgres: %w", err)
		}
		a.pg = pool

		cat, err := catalog.NewPostgresLoader(pool, a.logger).Load(ctx)
		if err != nil {
			return err
		}
		a.catalog = cat
		return nil

	default:
		return fmt.Errorf("unknown catalog source %q", a.config.Catalog.Source)
	}
}

func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

func (a *App) setupRouter() {
	if a.config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Logger(a.logger))
	router.Use(middleware.Recovery(a.logger))
	router.Use(middleware.CORS(a.config))

	router.GET("/health", a.handlers.Health.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.Use(middleware.Auth(&a.config.Auth, a.logger))

		recommendations := api.Group("/recommendations")
		{
			recommendations.GET("/:userId", a.handlers.Recommendation.Get)
			recommendations.POST("/:userId/refresh", a.handlers.Recommendation.Refresh)
			recommendations.GET("/:userId/explanations/:productId", a.handlers.Recommendation.Explain)
		}

		users := api.Group("/users")
		{
			users.GET("/:userId/similarity/:otherId", a.handlers.User.GetSimilarity)
			users.GET("/:userId/neighbors", a.handlers.User.GetNeighbors)
		}

		api.GET("/patterns", a.handlers.User.GetPatterns)
		api.GET("/trends", a.handlers.Trends.GetTrends)
		api.GET("/stats", a.handlers.Trends.GetStats)
		api.GET("/stats/effectiveness", a.handlers.Trends.GetEffectiveness)
	}

	a.router = router
}
