package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/contactdesk/backend/internal/config"
	"github.com/contactdesk/backend/internal/handler"
	"github.com/contactdesk/backend/internal/logging"
	"github.com/contactdesk/backend/internal/repository"
	"github.com/contactdesk/backend/internal/service"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Fatal("server error", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	store, err := repository.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open contact store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("close contact store", "error", err)
		}
	}()

	contactService := service.NewContactService(store)

	h := handler.New(store, cfg.AllowedOrigins, cfg.ProjectID)
	contactHandler := handler.NewContactHandler(contactService)

	server := &http.Server{
		Addr: cfg.Addr(),
		Handler: h.Routes(contactHandler, handler.RouteOptions{
			DebugEndpoint:  cfg.DebugEndpoint,
			MetricsEnabled: cfg.MetricsEnabled,
		}),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server listening", "addr", server.Addr, "backend", cfg.StoreBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
