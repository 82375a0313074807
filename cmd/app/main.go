package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/osse101/UsersAPI_Go/docs"
	"github.com/osse101/UsersAPI_Go/internal/bootstrap"
	"github.com/osse101/UsersAPI_Go/internal/config"
	"github.com/osse101/UsersAPI_Go/internal/mapping"
	"github.com/osse101/UsersAPI_Go/internal/server"
	"github.com/osse101/UsersAPI_Go/internal/user"
	"github.com/osse101/UsersAPI_Go/internal/validation"
)

// @title Users API
// @version 1.0
// @description CRUD API for user resources backed by an in-memory store.
// @BasePath /api
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	repos := bootstrap.InitializeRepositories(cfg)
	rules := mapping.NewRules()
	userService := user.NewService(repos.User, rules, validation.New())

	srv := server.NewServer(cfg, userService, rules)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	components := bootstrap.ShutdownComponents{Server: srv}
	if logFile != nil {
		components.LogFile = logFile
	}
	bootstrap.GracefulShutdown(shutdownCtx, components)
}
