package tui

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mandalnilabja/agentgate/internal/connect"
	"github.com/mandalnilabja/agentgate/internal/gateway"
	"github.com/mandalnilabja/agentgate/internal/template"
)

// Options configures a connect panel run.
type Options struct {
	AgentPath    string
	TemplateKey  string
	Backend      connect.Backend
	Registry     *template.Registry
	AuthorizeURL string
	Logger       *slog.Logger
}

// Run opens the connect panel for one agent and blocks until the operator
// quits or proceeds. Returns whether the gate was passed via the proceed key.
func Run(opts Options) (bool, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry = template.NewRegistry()
	}

	resolver := connect.NewResolver(opts.Backend, opts.Registry, opts.Logger)
	session := connect.NewSession(resolver, opts.Backend, connect.Request{
		AgentPath:   opts.AgentPath,
		TemplateKey: opts.TemplateKey,
	}, connect.SessionOptions{
		Authorize: func(row connect.Row) {
			url := gateway.AuthorizeURL(opts.AuthorizeURL, row.ID)
			if err := clipboard.WriteAll(url); err != nil {
				opts.Logger.Debug("clipboard copy failed", "error", err)
			}
			if err := openBrowser(url); err != nil {
				opts.Logger.Debug("browser open failed", "url", url, "error", err)
			}
		},
	})

	label := opts.AgentPath
	if label == "" {
		label = opts.TemplateKey
	}

	program := tea.NewProgram(newPanelModel(session, label), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("failed to run connect panel: %w", err)
	}

	model, ok := final.(panelModel)
	if !ok {
		return false, nil
	}
	return model.proceeded, nil
}

// openBrowser opens the URL with the platform opener.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
