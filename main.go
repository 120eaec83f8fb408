package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"regform-go/config"
	"regform-go/handlers"
	"regform-go/middleware"
	"regform-go/submission"
	"regform-go/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := config.ValidateConfig(cfg, logger); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v, err := utils.NewValidator()
	if err != nil {
		return err
	}

	h, err := handlers.NewHandlers(v, submission.NewLogSubmitter(logger), cfg, logger)
	if err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Cleanup(ctx)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(h, cfg, logger, limiter, middleware.NewSubmissionGate()),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(h *handlers.Handlers, cfg *config.Config, logger *slog.Logger, limiter *middleware.RateLimiter, gate *middleware.SubmissionGate) *mux.Router {
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logging(logger))
	r.Use(limiter.Middleware)
	r.Use(gate.Middleware)

	// Form page
	r.HandleFunc("/", h.RegisterForm).Methods(http.MethodGet)
	r.HandleFunc("/", h.SubmitForm).Methods(http.MethodPost)

	// JSON API
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	api.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/options", h.Options).Methods(http.MethodGet)
	api.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	// Preflights are answered by the CORS middleware, which only runs on a
	// matched route; anything else reaching here is a plain OPTIONS.
	api.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(h.MethodNotAllowed)

	return r
}
