package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lukk17/exchangeApp/internal/adapters/database/pgsql"
	"github.com/Lukk17/exchangeApp/internal/adapters/exchange"
	"github.com/Lukk17/exchangeApp/internal/core/services"
	"github.com/Lukk17/exchangeApp/internal/handlers"
	"github.com/Lukk17/exchangeApp/internal/metrics"
	"github.com/Lukk17/exchangeApp/internal/middleware"
	"github.com/Lukk17/exchangeApp/internal/platform/config"
	"github.com/Lukk17/exchangeApp/internal/platform/scheduler"
	"github.com/Lukk17/exchangeApp/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 10 * time.Second

// @title Exchange App API
// @version 1.0
// @description Downloads daily currency exchange rates and serves the stored history.

// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.ExchangeHTTPTimeout == 0 {
		logger.Warn("EXCHANGE_HTTP_TIMEOUT is 0, provider requests have no client-side timeout")
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	appMetrics := metrics.NewMetrics(prometheus.DefaultRegisterer)

	exchangeClient := exchange.NewClient(exchange.Config{
		URL:       cfg.ExchangeURL,
		AccessKey: cfg.ExchangeAccessKey,
		Symbols:   cfg.ExchangeSymbols,
		Base:      cfg.ExchangeBase,
		Timeout:   cfg.ExchangeHTTPTimeout,
	}, nil)

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(repos, exchangeClient, services.WithMetrics(appMetrics))

	downloadLimiter, err := middleware.NewMemoryRateLimiter(cfg.DownloadRateLimit)
	if err != nil {
		logger.Error("Failed to create download rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, metrics)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.New(corsConfig(cfg.CORSAllowedOrigins)),
		middleware.MetricsMiddleware(appMetrics),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, middleware.RateLimit(downloadLimiter))

	// Background jobs stop when jobsCtx is cancelled
	jobsCtx, stopJobs := context.WithCancel(context.Background())
	jobs := scheduler.New(logger, appMetrics)

	if err := registerJobs(jobsCtx, jobs, cfg, serviceContainer, logger); err != nil {
		logger.Error("Failed to schedule background jobs", slog.String("error", err.Error()))
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	stopJobs()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
	jobs.Wait()

	logger.Info("Server exited")
}

func corsConfig(origins []string) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{http.MethodGet, http.MethodHead, http.MethodOptions}

	if len(origins) == 0 {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}
	for _, origin := range origins {
		if origin == "*" {
			corsCfg.AllowAllOrigins = true
			return corsCfg
		}
	}
	corsCfg.AllowOrigins = origins
	return corsCfg
}
