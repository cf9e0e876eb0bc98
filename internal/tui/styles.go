package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/crudadmin/internal/notify"
)

// ------- styling (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	labelStyle    = lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("12"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	focusedPanelStyle = panelStyle.BorderForeground(lipgloss.Color("12"))
)

var bannerIcons = map[notify.Level]string{
	notify.Info:    "i",
	notify.Success: "✔",
	notify.Warning: "!",
	notify.Danger:  "✖",
}

func bannerStyle(level notify.Level) lipgloss.Style {
	switch level {
	case notify.Success:
		return successStyle
	case notify.Warning:
		return warningStyle
	case notify.Danger:
		return errorStyle
	}
	return accentStyle
}

func renderBanner(b notify.Banner) string {
	if b.IsZero() {
		return ""
	}
	return bannerStyle(b.Level).Render(bannerIcons[b.Level] + " " + b.Message)
}
