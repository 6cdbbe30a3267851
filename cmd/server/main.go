// Package main is the entry point for the sales leaderboard API server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/DenisMurerwa/EBU/internal/config"
	"github.com/DenisMurerwa/EBU/internal/pkg/db"
	"github.com/DenisMurerwa/EBU/internal/pkg/lock"
	"github.com/DenisMurerwa/EBU/internal/repository"
	"github.com/DenisMurerwa/EBU/internal/server"
	"github.com/DenisMurerwa/EBU/internal/service"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	// Run database migrations
	if err := runMigrations(ctx, dbPool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(dbPool.Pool)
	salesRepo := repository.NewSalesRepository(dbPool.Pool)
	entryRepo := repository.NewEntryRepository(dbPool.Pool)
	sessionRepo := repository.NewSessionRepository(dbPool.Pool)

	// Initialize the submission lock
	keyLock := lock.NewKeyLock()

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		sessionRepo,
		cfg.Auth.BcryptCost,
		cfg.Auth.SessionTTL,
		cfg.Admin.Phones,
	)

	ledgerService := service.NewLedgerService(userRepo, salesRepo, entryRepo, keyLock)

	leaderboardService := service.NewLeaderboardService(salesRepo, time.Local)

	// Initialize the HTTP server
	srv := server.New(&server.Dependencies{
		Config:             cfg,
		Pool:               dbPool,
		AuthService:        authService,
		LedgerService:      ledgerService,
		LeaderboardService: leaderboardService,
	})

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	// Graceful shutdown
	srv.Stop()
}

// runMigrations executes database migrations.
func runMigrations(ctx context.Context, pool *db.Pool) error {
	log.Info().Msg("Running database migrations...")

	// Migration 1: Create users table
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(50) NOT NULL,
			phone_number VARCHAR(13) NOT NULL,
			national_id VARCHAR(20) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT users_phone_number_key UNIQUE (phone_number),
			CONSTRAINT users_national_id_key UNIQUE (national_id)
		);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 1: users table created")

	// Migration 2: Create sales ledger table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sales (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			month_year CHAR(7) NOT NULL,
			connections BIGINT NOT NULL DEFAULT 0 CHECK (connections >= 0),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, month_year)
		);
		CREATE INDEX IF NOT EXISTS idx_sales_month_connections ON sales(month_year, connections DESC);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 2: sales table created")

	// Migration 3: Create sales submission audit table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sales_entries (
			id BIGSERIAL PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			admin_id UUID NOT NULL,
			month_year CHAR(7) NOT NULL,
			delta BIGINT NOT NULL CHECK (delta >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_sales_entries_month_time ON sales_entries(month_year, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_sales_entries_user_time ON sales_entries(user_id, created_at DESC);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 3: sales_entries table created")

	// Migration 4: Create sessions table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
			token VARCHAR(36) PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_expires ON sessions(expires_at);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 4: sessions table created")

	log.Info().Msg("All migrations completed successfully")
	return nil
}
