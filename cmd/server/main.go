package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/simphiwe/guesthouse/internal"
	"github.com/simphiwe/guesthouse/internal/email"
	"github.com/simphiwe/guesthouse/internal/handler"
	"github.com/simphiwe/guesthouse/internal/metrics"
	"github.com/simphiwe/guesthouse/internal/middleware"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize mail provider
	mailer, err := newMailer(cfg, logger)
	if err != nil {
		return fmt.Errorf("mailer initialization failed: %w", err)
	}
	logger.Info("Mail provider ready", "provider", cfg.MailProvider, "to", cfg.MailTo)

	// Initialize email renderer
	renderer, err := email.NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer initialization failed: %w", err)
	}

	// Initialize handlers
	emailHandler := handler.NewEmailHandler(renderer, mailer, cfg.MailTo, cfg.DispatchTimeout, logger)

	// Initialize middleware
	loggingMw := middleware.NewRequestLoggingMiddleware(logger)
	corsMw := middleware.NewCORSMiddleware(cfg.AllowedOrigins)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// Liveness text the uptime monitor polls
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		// Only handle exact root path
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		handler.Liveness(w, r)
	})

	// Form submission API
	emailHandler.RegisterRoutes(mux)

	stack := middleware.Stack(
		loggingMw.Handler,
		corsMw.Handler,
		metrics.Middleware,
	)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: stack(mux),
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

// newMailer selects the mail provider from configuration.
func newMailer(cfg *internal.Config, logger *slog.Logger) (email.Mailer, error) {
	switch cfg.MailProvider {
	case "smtp":
		return email.NewSMTPMailer(email.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			FromName: cfg.MailFromName,
		}, logger), nil
	case "postmark":
		return email.NewPostmarkMailer(email.PostmarkConfig{
			ServerToken:  cfg.PostmarkServerToken,
			AccountToken: cfg.PostmarkAccountToken,
			From:         cfg.MailFrom,
		}, logger)
	default:
		return email.NewDevMailer(cfg.MailOutputDir, logger), nil
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
