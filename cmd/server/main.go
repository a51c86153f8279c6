package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shokunin-apps/label-shokunin/internal"
	"github.com/shokunin-apps/label-shokunin/internal/billing"
	"github.com/shokunin-apps/label-shokunin/internal/handler"
	"github.com/shokunin-apps/label-shokunin/internal/metrics"
	"github.com/shokunin-apps/label-shokunin/internal/middleware"
	"github.com/shokunin-apps/label-shokunin/internal/printdoc"
	"github.com/shokunin-apps/label-shokunin/internal/render"
	"github.com/shokunin-apps/label-shokunin/internal/service"
	"github.com/shokunin-apps/label-shokunin/internal/store"
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

	// Initialize the usage store
	var usageStore store.UsageStore
	switch cfg.UsageStore {
	case "memory":
		usageStore = store.NewMemoryStore()
		logger.Warn("using in-memory usage store; counters will not survive a restart")
	default:
		db, err := sql.Open("pgx", cfg.DatabaseUrl)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer db.Close()

		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}

		// Run migrations
		if err := internal.RunMigrations(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("Database ready")

		usageStore = store.NewPostgresStore(db)
	}

	// Initialize billing (optional — nil when Stripe is not configured)
	var billingService billing.Service
	if cfg.StripeSecretKey != "" {
		billingService = billing.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookSecret, billing.PriceConfig{
			UmePriceID:   cfg.StripeUmePriceID,
			TakePriceID:  cfg.StripeTakePriceID,
			MatsuPriceID: cfg.StripeMatsuPriceID,
		})
		logger.Info("Stripe billing enabled")
	} else {
		logger.Warn("Stripe billing not configured; billing endpoints are stubs")
	}

	// Initialize services
	usageService := service.NewUsageService(usageStore, logger)
	generator := printdoc.NewGenerator(render.NewEncoderSurface(), logger)
	printService := service.NewPrintService(usageService, generator, logger)

	// Initialize middleware
	shopMw := middleware.NewShopAuthMiddleware(logger)
	loggingMw := middleware.NewRequestLoggingMiddleware(logger)
	metricsAuthMw := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)

	// Initialize handlers
	printHandler := handler.NewPrintHandler(printService, logger)
	usageHandler := handler.NewUsageHandler(usageService, logger)
	catalogHandler := handler.NewCatalogHandler()
	billingHandler := handler.NewBillingHandler(billingService, logger)
	webhookHandler := handler.NewWebhookHandler(billingService, usageService, logger)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics (basic auth when configured)
	mux.Handle("GET /metrics", metricsAuthMw.Handler(promhttp.Handler()))

	// Public catalogs and webhooks
	catalogHandler.RegisterRoutes(mux)
	webhookHandler.RegisterRoutes(mux)

	// Shop-scoped routes
	printHandler.RegisterRoutes(mux, shopMw.RequireShop)
	usageHandler.RegisterRoutes(mux, shopMw.RequireShop)
	billingHandler.RegisterRoutes(mux, shopMw.RequireShop)

	// Wrap with request logging and HTTP metrics
	root := middleware.Stack(loggingMw.Handler, metrics.Middleware)(mux)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: root,
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	<-sigChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
