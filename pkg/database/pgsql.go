package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const connectTimeout = 5 * time.Second

// NewPgxPool creates a new PostgreSQL connection pool. When ping is true the
// pool is checked before being returned.
func NewPgxPool(ctx context.Context, databaseURL string, ping bool) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}
	config.ConnConfig.ConnectTimeout = connectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if ping {
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
	}

	slog.Info("Connected to PostgreSQL database", slog.Bool("pinged", ping))
	return pool, nil
}

// ClosePgxPool closes the PostgreSQL connection pool.
func ClosePgxPool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
		slog.Info("PostgreSQL connection pool closed")
	}
}

// RunMigrations applies every pending "up" migration found under dir.
// It reports whether anything was applied.
func RunMigrations(databaseURL, dir string) (bool, error) {
	// migrate works on database/sql, opened through the pgx stdlib driver.
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return false, fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			slog.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := db.Ping(); err != nil {
		return false, fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return false, fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return false, fmt.Errorf("could not create migrate instance: %w", err)
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return false, fmt.Errorf("failed to apply migrations: %w", upErr)
	}

	// Dirty state after Up surfaces on Close.
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return false, fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return false, fmt.Errorf("migration database error: %w", dbErr)
	}

	return upErr == nil, nil
}
