package main

// Storefront API server.

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/murshadpk/storefront/app"
	"github.com/murshadpk/storefront/server"
)

const shutdownTimeout = 30 * time.Second

func main() {
	application, err := app.New()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("failed to initialize app", "error", err)
		os.Exit(1)
	}

	err = run(application)
	application.Close()
	if err != nil {
		application.Logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(application *app.App) error {
	srv, err := server.New(application.Config, application.Logger, application.Handlers)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Run()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	application.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Close(shutdownCtx); err != nil {
		return errors.Join(errors.New("forced shutdown"), err)
	}
	return nil
}
