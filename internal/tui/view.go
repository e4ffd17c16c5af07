package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render("⠋ " + m.loadingMessage))
	}

	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()),
		))
	}

	var content string
	switch m.currentScene {
	case SceneEmployees:
		content = m.employeesModel.View()
	case SceneBreakdown:
		content = m.breakdownModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := m.height - 4 // Title (2) + status (1) + padding (1)

	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(max(1, contentHeight)).Render(content),
		m.renderStatusBar(),
	))
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("SEVPV - Severance Liability")

	breadcrumb := m.currentScene.String()
	if m.data != nil && m.data.Source != "" {
		breadcrumb = fmt.Sprintf("%s / %s", m.data.Source, breadcrumb)
	}
	if m.data != nil && m.data.Engine != nil {
		breadcrumb += fmt.Sprintf("  (as of %s)", m.data.Engine.Options().AsOf.Format("2.1.2006"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(breadcrumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("↑/↓", "move"),
		formatShortcut("enter", "breakdown"),
		formatShortcut("esc", "back"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	return StatusBarStyle.Width(max(0, m.width-2)).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	helpText := `
SEVPV - Severance Liability Calculator

KEYBOARD SHORTCUTS:
  ↑/↓ k/j   Move through the table
  enter     Show the selected employee's breakdown
  ESC       Go back
  ?         Show this help
  q/Ctrl+C  Quit

The employee table lists the liability of every employee as of the
valuation date. Rows that could not be calculated show "Invalid data";
their breakdown explains why.
`
	return BorderStyle.Render(helpText)
}
