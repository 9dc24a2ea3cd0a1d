// TripDesk API Server
//
// @title TripDesk API
// @version 1.0
// @description Trip catalogue and client registration service
// @host localhost:8080
// @BasePath /api
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mzurek/tripdesk/internal/config"
	"github.com/mzurek/tripdesk/internal/container"
)

func main() {
	// .env is optional, used for local development only.
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app := container.New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Initialize(ctx); err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Run blocks until SIGINT/SIGTERM and drains the HTTP server.
	runErr := app.Run()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.Shutdown(shutdownCtx); err != nil {
		app.Logger().Error("Shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if runErr != nil {
		app.Logger().Error("Server error", slog.String("error", runErr.Error()))
		os.Exit(1)
	}
}
