// Package tui implements the interactive connect panel.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mandalnilabja/agentgate/internal/connect"
)

type viewMode int

const (
	viewPanel viewMode = iota
	viewEdit
)

// secretFieldKey names the form field holding the typed credential value.
const secretFieldKey = "credential_value"

// panelModel renders the credential rows of one agent and drives the
// connection session from key input.
type panelModel struct {
	session    *connect.Session
	agentLabel string
	styles     Styles

	mode      viewMode
	cursor    int
	form      *huh.Form
	draft     string
	status    string
	proceeded bool
	width     int
}

type openedMsg struct{}

type savedMsg struct{ err error }

type disconnectedMsg struct{ err error }

func newPanelModel(session *connect.Session, agentLabel string) panelModel {
	return panelModel{
		session:    session,
		agentLabel: agentLabel,
		styles:     DefaultStyles,
	}
}

func (m panelModel) Init() tea.Cmd {
	return m.openCmd()
}

func (m panelModel) openCmd() tea.Cmd {
	return func() tea.Msg {
		m.session.Open(context.Background())
		return openedMsg{}
	}
}

func (m panelModel) saveCmd() tea.Cmd {
	return func() tea.Msg {
		return savedMsg{err: m.session.Save(context.Background())}
	}
}

func (m panelModel) disconnectCmd(rowID string) tea.Cmd {
	return func() tea.Msg {
		return disconnectedMsg{err: m.session.Disconnect(context.Background(), rowID)}
	}
}

func (m panelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == viewEdit && m.form != nil {
		formModel, cmd := m.form.Update(msg)
		m.form = formModel.(*huh.Form)
		switch m.form.State {
		case huh.StateCompleted:
			// The model is copied on every Update, so the completed value is
			// read back from the form rather than through a field binding.
			m.session.SetDraft(m.form.GetString(secretFieldKey))
			m.form = nil
			m.status = "Saving..."
			return m, m.saveCmd()
		case huh.StateAborted:
			m.session.Cancel()
			m.form = nil
			m.mode = viewPanel
			m.status = ""
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case openedMsg:
		m.clampCursor()
		return m, nil

	case savedMsg:
		if msg.err != nil {
			// Draft survives a failed save; reopen the form with it.
			_, draft, ok := m.session.Editing()
			if ok {
				return m.enterEditMode(draft), nil
			}
			m.status = msg.err.Error()
			m.mode = viewPanel
			return m, nil
		}
		m.mode = viewPanel
		m.status = "Credential connected."
		m.clampCursor()
		return m, nil

	case disconnectedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = "Credential disconnected."
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m panelModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.session.Rows()

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.session.Close()
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
		return m, nil

	case "r":
		m.status = "Refreshing..."
		return m, m.openCmd()

	case "enter":
		if m.cursor >= len(rows) {
			return m, nil
		}
		row := rows[m.cursor]
		if err := m.session.BeginConnect(row.ID); err != nil {
			m.status = err.Error()
			return m, nil
		}
		if row.OAuthBacked {
			m.status = fmt.Sprintf("Authorization for %s opened; refresh after approving.", row.DisplayName)
			return m, nil
		}
		model := m.enterEditMode("")
		return model, model.form.Init()

	case "d":
		if m.cursor >= len(rows) {
			return m, nil
		}
		row := rows[m.cursor]
		if !row.Connected {
			m.status = fmt.Sprintf("%s is not connected.", row.DisplayName)
			return m, nil
		}
		m.status = "Disconnecting..."
		return m, m.disconnectCmd(row.ID)

	case "p":
		if m.session.Gate().AllRequiredMet {
			m.proceeded = true
			m.session.Close()
			return m, tea.Quit
		}
		m.status = "Connect all required credentials before proceeding."
		return m, nil
	}

	return m, nil
}

// enterEditMode builds the secret-input form for the row under edit.
func (m panelModel) enterEditMode(draft string) panelModel {
	rowID, _, ok := m.session.Editing()
	if !ok {
		return m
	}

	title := rowID
	for _, row := range m.session.Rows() {
		if row.ID == rowID {
			title = row.DisplayName
		}
	}

	m.draft = draft
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Connect %s", title)).
				Description("Paste the credential value. Esc cancels.").
				Key(secretFieldKey).
				EchoMode(huh.EchoModePassword).
				Value(&m.draft),
		),
	)
	m.mode = viewEdit
	m.status = ""
	return m
}

func (m *panelModel) clampCursor() {
	count := len(m.session.Rows())
	if count == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= count {
		m.cursor = count - 1
	}
}

func (m panelModel) View() string {
	if m.mode == viewEdit && m.form != nil {
		return m.form.View()
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Connect credentials: "+m.agentLabel) + "\n\n")

	rows := m.session.Rows()
	errRowID, errText := m.session.RowError()

	if len(rows) == 0 {
		b.WriteString(m.styles.Dim.Render("  No credentials to connect for this agent.") + "\n")
	}

	for i, row := range rows {
		line := fmt.Sprintf("%s %s", connectedIcon(row.Connected, m.styles), row.DisplayName)
		if row.Required {
			line += " " + m.styles.Badge.Render("required")
		}
		if row.OAuthBacked {
			line += " " + m.styles.Dim.Render("(oauth)")
		}
		if i == m.cursor {
			line = m.styles.Selected.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")

		if row.Description != "" {
			b.WriteString(m.styles.Dim.Render("      "+row.Description) + "\n")
		}
		if row.ID == errRowID && errText != "" {
			b.WriteString(m.styles.Error.Render("      "+errText) + "\n")
		}
	}

	b.WriteString("\n" + m.gateBanner() + "\n")

	if m.session.Saving() {
		b.WriteString(m.styles.Warning.Render("  working...") + "\n")
	}
	if m.status != "" {
		b.WriteString(m.styles.Dim.Render("  "+m.status) + "\n")
	}

	b.WriteString("\n" + m.styles.Footer.Render("enter connect · d disconnect · r refresh · p proceed · q quit"))
	return b.String()
}

// gateBanner renders the required-credentials gate state.
func (m panelModel) gateBanner() string {
	gate := m.session.Gate()
	if gate.AllRequiredMet {
		if gate.RequiredTotal == 0 {
			return m.styles.Banner.Render(m.styles.Success.Render("No required credentials. Ready to proceed."))
		}
		return m.styles.Banner.Render(m.styles.Success.Render("All required credentials connected. Ready to proceed."))
	}
	return m.styles.Banner.Render(m.styles.Warning.Render(
		fmt.Sprintf("%d of %d required credentials connected.", gate.RequiredConnected, gate.RequiredTotal),
	))
}
