package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	LogLevel      string
	StorageDriver string

	DatabaseURL    string
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	RateLimit          string
	CORSAllowedOrigins []string

	// Optional integrations stay disabled while their URL is empty.
	RedisURL       string
	IdempotencyTTL time.Duration
	RabbitMQURL    string
	EventsExchange string
	MongoURI       string
	MongoDatabase  string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "finance-backend")
	v.SetDefault("RATE_LIMIT", "120-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("IDEMPOTENCY_TTL", "24h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("EVENTS_EXCHANGE", "finance_events")
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("MONGO_DATABASE", "finance_audit")
	v.AutomaticEnv()

	cfg := &Config{
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		LogLevel:       strings.ToLower(v.GetString("LOG_LEVEL")),
		StorageDriver:  strings.ToLower(v.GetString("STORAGE_DRIVER")),
		DatabaseURL:    v.GetString("PGSQL_URL"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTIssuer:      v.GetString("JWT_ISSUER"),
		RateLimit:      v.GetString("RATE_LIMIT"),
		RedisURL:       v.GetString("REDIS_URL"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		EventsExchange: v.GetString("EVENTS_EXCHANGE"),
		MongoURI:       v.GetString("MONGO_URI"),
		MongoDatabase:  v.GetString("MONGO_DATABASE"),
	}

	var err error
	if cfg.JWTExpiryDuration, err = parseDuration(v, "JWT_EXPIRY_DURATION"); err != nil {
		return nil, err
	}
	if cfg.IdempotencyTTL, err = parseDuration(v, "IDEMPOTENCY_TTL"); err != nil {
		return nil, err
	}
	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	switch cfg.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER is %s", StoragePostgres)
		}
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	return d, nil
}
