package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DukeRupert/tenebreuse/internal"
	"github.com/DukeRupert/tenebreuse/internal/csrf"
	"github.com/DukeRupert/tenebreuse/internal/handler"
	"github.com/DukeRupert/tenebreuse/internal/metrics"
	"github.com/DukeRupert/tenebreuse/internal/middleware"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize document loader
	loader, err := internal.NewLoader(cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("Document source ready", "provider", cfg.DataProvider, "bundle", cfg.DataBundle)

	// Initialize template renderer
	renderer, err := handler.NewRenderer(handler.RendererConfig{
		FS:     internal.TemplatesFS(cfg),
		Logger: logger,
		IsDev:  cfg.IsDevelopment() && cfg.TemplatesDir != "",
	})
	if err != nil {
		return fmt.Errorf("renderer initialization failed: %w", err)
	}
	logger.Info("Templates loaded", "count", len(renderer.ListTemplates()))

	notifier, err := internal.NewNotifier(cfg, logger)
	if err != nil {
		return fmt.Errorf("notifier initialization failed: %w", err)
	}

	// Initialize middleware
	isSecure := !cfg.IsDevelopment()
	formLimiter := middleware.NewRateLimiter(cfg.FormRateLimit, cfg.FormRateWindow, logger)
	defer formLimiter.Close()
	rateLimitMw := middleware.NewRateLimitMiddleware(formLimiter, logger)
	securityMw := middleware.NewSecurityHeadersMiddleware(isSecure)
	loggingMw := middleware.NewRequestLoggingMiddleware(logger)
	metricsAuthMw := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)
	if cfg.MetricsUsername == "" && cfg.MetricsPassword == "" {
		logger.Warn("/metrics endpoint is not protected (METRICS_USERNAME and METRICS_PASSWORD are empty)")
	}

	// Initialize handlers
	staticFS := internal.StaticFS(cfg)
	siteHandler := handler.NewSiteHandler(handler.SiteHandlerConfig{
		Loader:   loader,
		Renderer: renderer,
		Notifier: notifier,
		BaseURL:  cfg.BaseURL,
		IsSecure: isSecure,
		ReloadDocuments: cfg.IsDevelopment(),
		Logger:          logger,
	})
	ogImageHandler := handler.NewOGImageHandler(loader, staticFS, logger)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	// Health check and metrics
	mux.Handle("GET /health", handler.Health(loader, logger))
	mux.Handle("GET /metrics", metricsAuthMw.Handler(promhttp.Handler()))

	mux.Handle("GET "+handler.OGImagePath, ogImageHandler)

	// Pages and forms
	siteHandler.RegisterRoutes(mux, csrf.Protect(logger), rateLimitMw.Limit)

	root := middleware.Stack(
		metrics.Middleware,
		loggingMw.Handler,
		securityMw.Handler,
	)(mux)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           root,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)

	// Start server in goroutine
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal or a listener failure
	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-sigChan:
	}
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
