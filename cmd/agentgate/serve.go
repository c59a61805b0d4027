package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/spf13/cobra"

	"github.com/mandalnilabja/agentgate/internal/app"
	"github.com/mandalnilabja/agentgate/internal/config"
	"github.com/mandalnilabja/agentgate/internal/storage"
	"github.com/mandalnilabja/agentgate/internal/template"
	"github.com/mandalnilabja/agentgate/internal/transport/http/handler"
	"github.com/mandalnilabja/agentgate/internal/transport/http/middleware/auth"
)

const sessionTTL = 24 * time.Hour

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the credential store server",
		Long: `Start the HTTP credential store. Credentials are encrypted at rest in a
local SQLite database; agents query their requirements against it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	logger := setupLogger()
	slog.SetDefault(logger)

	if err := config.EnsureDataDir(); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := config.EnsureConfigFile(); err != nil {
		logger.Warn("failed to create config file", "error", err)
	}
	cfg := config.Load()

	store, err := storage.NewSQLiteStorage(config.DBPath())
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()

	if err := ensureAdminPassword(store); err != nil {
		return err
	}

	registry := template.NewRegistry()
	if err := registry.LoadDir(cfg.TemplateDir); err != nil {
		logger.Warn("failed to load template overlays", "dir", cfg.TemplateDir, "error", err)
	}

	sessions := auth.NewSessionStore(sessionTTL)
	tokenCache, err := ristretto.NewCache(&ristretto.Config[string, bool]{
		NumCounters: 1e4,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return fmt.Errorf("failed to create token cache: %w", err)
	}
	defer tokenCache.Close()

	repo := handler.NewRepo(store, registry, sessions, logger)
	router := app.NewRouter(repo, &app.RouterOptions{
		Logger:       logger,
		Storage:      store,
		SessionStore: sessions,
		TokenCache:   tokenCache,
	})

	printStartupBanner(cfg)

	server := app.NewServer(cfg, router, logger)
	return server.Start()
}
