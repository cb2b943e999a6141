package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fullstackdevx/fso-part4/internal/handlers"
	"github.com/fullstackdevx/fso-part4/internal/logger"
	"github.com/fullstackdevx/fso-part4/internal/router"
	"github.com/fullstackdevx/fso-part4/pkg/config"
	"github.com/fullstackdevx/fso-part4/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.Env)

	// Cancel on SIGINT/SIGTERM for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

// run serves until ctx is cancelled; every startup failure is returned so main exits non-zero
func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := config.InitDB(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.CloseDB()

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(log)

	config.SetupMiddleware(e, log)

	err = router.SetupRoutes(ctx, e, db.Database, router.Deps{
		JWTSecret:  cfg.Secret,
		TokenTTL:   cfg.TokenTTL,
		BcryptCost: cfg.BcryptCost,
		Log:        log,
	})
	if err != nil {
		return fmt.Errorf("failed to set up routes: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.String("port", cfg.Port), slog.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server stopped unexpectedly: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}
	log.Info("server stopped gracefully")
	return nil
}
