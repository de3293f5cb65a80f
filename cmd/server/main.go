package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/hollis/threadbare/internal"
	"github.com/hollis/threadbare/internal/bulk"
	"github.com/hollis/threadbare/internal/catalog"
	"github.com/hollis/threadbare/internal/discount"
	"github.com/hollis/threadbare/internal/handler"
	"github.com/hollis/threadbare/internal/inventory"
	"github.com/hollis/threadbare/internal/middleware"
	"github.com/hollis/threadbare/internal/order"
	"github.com/hollis/threadbare/internal/router"
	"github.com/hollis/threadbare/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	st := store.NewPGStore(pool)

	// Initialize services
	synchronizer := catalog.NewSynchronizer(st, logger)
	discounts := discount.NewService(st, logger)
	orders := order.NewService(st, discounts, logger)
	ledger := inventory.NewLedger(st, logger)
	importer := bulk.NewImporter(st, synchronizer, logger)
	exporter := bulk.NewExporter(st, logger)

	h := handler.New(st, synchronizer, importer, exporter, discounts, orders, ledger, logger)

	// Initialize middleware
	metrics := middleware.NewMetrics("threadbare")

	chain := []router.Middleware{
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
	}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		chain = append(chain, limiter.Middleware)
	}
	chain = append(chain, router.Logger(logger))

	r := router.New(chain...)

	// Metrics endpoint, protect via firewall in production
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	h.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
