package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/bacaxnot/finance-sub000/cmd/docs"
	"github.com/bacaxnot/finance-sub000/internal/adapters/mongodb"
	"github.com/bacaxnot/finance-sub000/internal/adapters/rabbitmq"
	redisadapter "github.com/bacaxnot/finance-sub000/internal/adapters/redis"
	"github.com/bacaxnot/finance-sub000/internal/core/eventbus"
	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
	"github.com/bacaxnot/finance-sub000/internal/core/services"
	"github.com/bacaxnot/finance-sub000/internal/core/subscribers"
	"github.com/bacaxnot/finance-sub000/internal/handlers"
	"github.com/bacaxnot/finance-sub000/internal/middleware"
	"github.com/bacaxnot/finance-sub000/internal/platform/config"
	"github.com/bacaxnot/finance-sub000/internal/repositories/database/memory"
	"github.com/bacaxnot/finance-sub000/internal/repositories/database/pgsql"
	"github.com/bacaxnot/finance-sub000/pkg/database"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const startupTimeout = 10 * time.Second

// @title Finance Backend API
// @version 1.0
// @description Personal finance ledger: accounts, transactions and categories with event-driven balances.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run wires the application and serves until the server fails. Returning
// instead of exiting lets the deferred closers run.
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	repos, closeRepos, err := setupRepositories(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeRepos()

	extras, closeIntegrations, err := setupEventSubscribers(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize event integrations: %w", err)
	}
	defer closeIntegrations()

	routeOpts := handlers.RouteOptions{IdempotencyTTL: cfg.IdempotencyTTL}
	if cfg.RedisURL != "" {
		client, err := redisadapter.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		defer client.Close()
		routeOpts.Idempotency = redisadapter.NewIdempotencyRepository(client)
		logger.Info("Idempotency store enabled", slog.Duration("ttl", cfg.IdempotencyTTL))
	}

	serviceContainer := services.NewServiceContainer(cfg, logger, repos, extras...)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	limiterInstance, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("invalid rate limit: %w", err)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RateLimit(limiterInstance),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, routeOpts)
	setupSwaggerRoutes(r, cfg)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("server failed to run: %w", err)
	}
	return nil
}

func setupRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewRepositoryProvider(), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}

	logger.Info("Running database migrations...", slog.String("path", cfg.MigrationsPath))
	applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
	if err != nil {
		database.ClosePgxPool(dbPool)
		return portsrepo.RepositoryProvider{}, nil, err
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

// setupEventSubscribers connects the optional RabbitMQ forwarder and Mongo
// audit trail. Each one is skipped while its URL is unset.
func setupEventSubscribers(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]eventbus.Subscriber, func(), error) {
	var extras []eventbus.Subscriber
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.RabbitMQURL != "" {
		conn, ch, err := rabbitmq.Dial(cfg.RabbitMQURL, "finance-backend", cfg.EventsExchange)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() {
			_ = ch.Close()
			_ = conn.Close()
		})
		extras = append(extras, subscribers.NewEventForwarder(rabbitmq.NewPublisher(ch), cfg.EventsExchange))
		logger.Info("Forwarding transaction events", slog.String("exchange", cfg.EventsExchange))
	}

	if cfg.MongoURI != "" {
		client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			_ = client.Disconnect(context.Background())
			closeAll()
			return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
		}
		closers = append(closers, func() {
			_ = client.Disconnect(context.Background())
		})
		extras = append(extras, subscribers.NewAuditRecorder(mongodb.NewAuditRepository(client, cfg.MongoDatabase)))
		logger.Info("Recording audit trail", slog.String("database", cfg.MongoDatabase))
	}

	return extras, closeAll, nil
}

// setupSwaggerRoutes serves the API docs outside production. Regenerate them
// with `swag init -g cmd/finance_backend/main.go -o cmd/docs`.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
