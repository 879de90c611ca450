package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"tour-lab/internal/api"
	"tour-lab/internal/app"
	"tour-lab/internal/config"
	"tour-lab/internal/platform/obs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires the configured instance source and cache behind ports and starts the HTTP server.
func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := obs.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	eval, err := app.LoadEvaluator(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("load instance: %w", err)
	}
	logger.Info("instance loaded",
		zap.String("source", cfg.DBDriver),
		zap.Int("locations", eval.World().Len()),
		zap.Int("distances", eval.World().Distances().Len()),
	)

	measureCache, closeCache, err := app.OpenMeasureCache(ctx, cfg, eval.World())
	if err != nil {
		return err
	}
	defer closeCache()

	renderer, err := app.NewRenderer(cfg)
	if err != nil {
		return err
	}

	router := api.NewRouter(eval, measureCache, renderer, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("cache", cfg.CacheBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-shutdown:
		logger.Info("starting graceful shutdown", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
