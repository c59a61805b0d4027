package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the connect panel.
type Theme struct {
	TextPrimary lipgloss.Color
	TextDim     lipgloss.Color
	Accent      lipgloss.Color
	Success     lipgloss.Color
	Warning     lipgloss.Color
	Error       lipgloss.Color
	Border      lipgloss.Color
}

// DefaultTheme is a dark palette in the Tokyo Night range.
var DefaultTheme = Theme{
	TextPrimary: lipgloss.Color("#c0caf5"),
	TextDim:     lipgloss.Color("#565f89"),
	Accent:      lipgloss.Color("#7aa2f7"),
	Success:     lipgloss.Color("#9ece6a"),
	Warning:     lipgloss.Color("#e0af68"),
	Error:       lipgloss.Color("#f7768e"),
	Border:      lipgloss.Color("#414868"),
}

// Styles provides pre-configured lipgloss styles using the theme.
type Styles struct {
	Title    lipgloss.Style
	Base     lipgloss.Style
	Dim      lipgloss.Style
	Selected lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Badge    lipgloss.Style
	Banner   lipgloss.Style
	Footer   lipgloss.Style
}

// NewStyles creates a new Styles instance from a Theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Padding(0, 1),
		Base:     lipgloss.NewStyle().Foreground(t.TextPrimary),
		Dim:      lipgloss.NewStyle().Foreground(t.TextDim),
		Selected: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Success:  lipgloss.NewStyle().Foreground(t.Success),
		Warning:  lipgloss.NewStyle().Foreground(t.Warning),
		Error:    lipgloss.NewStyle().Foreground(t.Error),
		Badge:    lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		Banner: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().Foreground(t.TextDim),
	}
}

// DefaultStyles returns styles using the default theme.
var DefaultStyles = NewStyles(DefaultTheme)

// connectedIcon returns a styled connection indicator.
func connectedIcon(connected bool, s Styles) string {
	if connected {
		return s.Success.Render("●")
	}
	return s.Dim.Render("○")
}
