package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"envmanager/internal/view"
)

// helpOverlay lists the shell and dialog shortcuts.
type helpOverlay struct {
	model *Model
}

func (h *helpOverlay) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "?", "q", "enter":
		h.model.doc.Detach(h)
	}
	return nil
}

func (h *helpOverlay) View(_ *view.Painter, _, _ int) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00d7ff"))
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd700")).MarginTop(1)
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#87d7af")).Bold(true).Width(14)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff")).MarginTop(1)
	boxStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)

	row := func(k, desc string) {
		b.WriteString(keyStyle.Render(k))
		b.WriteString(descStyle.Render(desc))
		b.WriteString("\n")
	}

	b.WriteString(titleStyle.Render("Help — Keyboard Shortcuts"))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Menu"))
	b.WriteString("\n")
	row("↑ / ↓", "Navigate menu items")
	row("Enter/Space", "Select highlighted item")
	for _, item := range h.model.items {
		if item.ID == "" {
			row(item.Key, item.Description)
		}
	}
	row("q / Ctrl+C", "Quit")

	b.WriteString(sectionStyle.Render("Environment dialog"))
	b.WriteString("\n")
	row("r", "Refresh")
	row("o", "Show or hide other nodes")
	row("↑/↓ PgUp/PgDn", "Scroll")
	row("Esc / x", "Close")

	b.WriteString(hintStyle.Render("Press Esc to close"))

	return boxStyle.Render(b.String())
}
