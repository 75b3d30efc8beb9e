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

	"github.com/sebuszqo/MyFinance/internal/config"
	"github.com/sebuszqo/MyFinance/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("could not initialize store: %w", err)
	}
	defer st.close()

	a := newApp(cfg, st, logger)

	if cfg.DemoPassword != "" {
		demoID, err := a.seedDemo(ctx, cfg.DemoPassword)
		if err != nil {
			return err
		}
		logger.Info("demo account ready", "email", demoEmail, "user_id", demoID)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: a.server.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "store", cfg.StoreBackend, "legacy_routes", cfg.LegacyRoutes)
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

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
