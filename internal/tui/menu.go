package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"envmanager/internal/host"
)

// renderMenu renders the main menu screen
func (m *Model) renderMenu() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00d7ff")).MarginBottom(1)
	subtitleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	menuItemStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	menuItemSelectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#00d7ff")).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")).PaddingLeft(2)
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff")).MarginTop(1)

	b.WriteString(titleStyle.Render("envmanager — Main Menu"))
	b.WriteString("\n")
	if m.subtitle != "" {
		b.WriteString(subtitleStyle.Render(m.subtitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range m.items {
		itemText := fmt.Sprintf("[%s] %s", item.Key, item.Label)
		if i == m.selection {
			b.WriteString(menuItemSelectedStyle.Render(itemText))
		} else {
			b.WriteString(menuItemStyle.Render(itemText))
		}
		b.WriteString("\n")
		b.WriteString(descStyle.Render(item.Description))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Navigate: ↑/↓ or keys | Select: Enter/Space | Help: ? | Quit: q"))
	b.WriteString("\n")

	return b.String()
}

// InsertButtonGroup places extension buttons before the Help entry.
func (m *Model) InsertButtonGroup(buttons ...host.Button) {
	at := len(m.items)
	for i, item := range m.items {
		if item.ID == itemHelp {
			at = i
			break
		}
	}

	added := make([]MenuItem, 0, len(buttons))
	for _, b := range buttons {
		label := b.Label
		if b.Icon != "" {
			label = b.Icon + " " + b.Label
		}
		added = append(added, MenuItem{
			Key:         b.Key,
			Label:       label,
			Description: b.Tooltip,
			Action:      b.Action,
		})
	}

	items := make([]MenuItem, 0, len(m.items)+len(added))
	items = append(items, m.items[:at]...)
	items = append(items, added...)
	items = append(items, m.items[at:]...)
	m.items = items

	m.logger.Debug("tui.menu.inserted", "Extension buttons added to menu", map[string]interface{}{
		"count": len(added),
	})
}

// navigateUp moves selection up in the menu
func (m *Model) navigateUp() {
	if m.selection > 0 {
		m.selection--
	} else {
		// Wrap to bottom
		m.selection = len(m.items) - 1
	}
}

// navigateDown moves selection down in the menu
func (m *Model) navigateDown() {
	if m.selection < len(m.items)-1 {
		m.selection++
	} else {
		// Wrap to top
		m.selection = 0
	}
}

// itemByKey returns the index of the item with the given shortcut key.
func (m *Model) itemByKey(key string) (int, bool) {
	for i, item := range m.items {
		if item.Key == key {
			return i, true
		}
	}
	return 0, false
}

// restoreSelection selects the item labeled label, falling back to index.
func (m *Model) restoreSelection(label string, index int) {
	for i, item := range m.items {
		if item.Label == label {
			m.selection = i
			return
		}
	}
	if index >= 0 && index < len(m.items) {
		m.selection = index
	}
}
