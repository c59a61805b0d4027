package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mandalnilabja/agentgate/internal/config"
	"github.com/mandalnilabja/agentgate/internal/connect"
	"github.com/mandalnilabja/agentgate/internal/gateway"
	"github.com/mandalnilabja/agentgate/internal/storage"
	"github.com/mandalnilabja/agentgate/internal/template"
	"github.com/mandalnilabja/agentgate/internal/tui"
)

type connectFlags struct {
	agentPath   string
	templateKey string
	storeURL    string
	token       string
	local       bool
}

func newConnectCmd() *cobra.Command {
	flags := &connectFlags{}
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Open the connect panel for an agent",
		Long: `Open the interactive connect panel: resolve which credentials the agent
needs, connect or disconnect each one, and proceed once every required
credential is connected. Exits non-zero when the gate is not passed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConnect(flags)
		},
	}

	cmd.Flags().StringVar(&flags.agentPath, "agent", "", "Registered agent path for requirement lookup")
	cmd.Flags().StringVar(&flags.templateKey, "type", "", "Agent type key for the static credential template")
	cmd.Flags().StringVar(&flags.storeURL, "store-url", "", "Credential store base URL (default from config)")
	cmd.Flags().StringVar(&flags.token, "token", os.Getenv("AGENTGATE_ADMIN_TOKEN"), "Bearer token for stores with an admin password")
	cmd.Flags().BoolVar(&flags.local, "local", false, "Use the local database directly instead of a store URL")

	return cmd
}

func runConnect(flags *connectFlags) error {
	if flags.agentPath == "" && flags.templateKey == "" {
		return fmt.Errorf("either --agent or --type is required")
	}

	// The panel owns the terminal; keep logging quiet and on stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	cfg := config.Load()

	var backend connect.Backend
	if flags.local {
		if err := config.EnsureDataDir(); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		store, err := storage.NewSQLiteStorage(config.DBPath())
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		defer store.Close()
		backend = gateway.NewLocalBackend(store)
	} else {
		storeURL := flags.storeURL
		if storeURL == "" {
			storeURL = cfg.StoreURL
		}
		backend = gateway.NewClient(storeURL, logger).WithToken(flags.token)
	}

	registry := template.NewRegistry()
	if err := registry.LoadDir(cfg.TemplateDir); err != nil {
		logger.Warn("failed to load template overlays", "dir", cfg.TemplateDir, "error", err)
	}

	proceeded, err := tui.Run(tui.Options{
		AgentPath:    flags.agentPath,
		TemplateKey:  flags.templateKey,
		Backend:      backend,
		Registry:     registry,
		AuthorizeURL: cfg.AuthorizeURL,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	if !proceeded {
		return fmt.Errorf("required credentials not connected")
	}

	fmt.Fprintln(os.Stdout, "All required credentials connected.")
	return nil
}
