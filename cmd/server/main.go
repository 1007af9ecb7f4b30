package main

import (
	"bufio"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quickmsg/messaging-system/internal/api"
	"github.com/quickmsg/messaging-system/internal/core/service"
	"github.com/quickmsg/messaging-system/internal/infrastructure/bootstrap"
	"github.com/quickmsg/messaging-system/internal/infrastructure/config"
	"github.com/quickmsg/messaging-system/internal/infrastructure/db/sqlite"
	"github.com/quickmsg/messaging-system/internal/infrastructure/fanout"
	"github.com/quickmsg/messaging-system/internal/infrastructure/storage"
	"github.com/quickmsg/messaging-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := sqlite.Open(ctx, cfg.SQLite.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SQLite.Path).Msg("failed to open database")
	}
	defer db.Close()

	if err := sqlite.RunMigrations(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	if err := os.MkdirAll(cfg.Files.Dir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Files.Dir).Msg("failed to create files directory")
	}

	// --- Services ---
	users := sqlite.NewUserRepository(db)
	clients := sqlite.NewClientRepository(db)
	messages := sqlite.NewMessageRepository(db)
	files := storage.NewLocalStore(cfg.Files.Dir)

	authService := service.NewAuthService(users, clients, log)

	registry := fanout.NewRegistry(log)
	defer registry.Close()

	messageService := service.NewMessageService(messages, files, registry, log)

	// --- First-run admin bootstrap ---
	needs, err := authService.NeedsBootstrap(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to check for admin user")
	}
	if needs {
		username, password, err := bootstrap.PromptAdmin(bufio.NewReader(os.Stdin), os.Stdout)
		if err != nil {
			log.Fatal().Err(err).Msg("admin bootstrap failed")
		}
		if _, err := authService.EnsureAdmin(ctx, username, password); err != nil {
			log.Fatal().Err(err).Msg("failed to create admin user")
		}
	}

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Auth:     authService,
		Messages: messageService,
		Registry: registry,
		FilesDir: cfg.Files.Dir,
		Logger:   log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
