package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Built-in menu item ids
const (
	itemHelp = "help"
	itemQuit = "quit"
)

// MenuItem represents a menu item
type MenuItem struct {
	ID          string         // Built-in id; empty for extension buttons
	Key         string         // Shortcut key
	Label       string         // Display label
	Description string         // Short description
	Action      func() tea.Cmd // Extension action
}

// UIState represents the persisted UI state (ui_state.json)
type UIState struct {
	Selection int       `json:"selection"` // Menu selection index
	LastItem  string    `json:"last_item"` // Label of the selected item
	Updated   time.Time `json:"updated"`   // Last update timestamp
}

// DefaultMenuItems returns the built-in menu items. Extension buttons are
// inserted before Help.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{ID: itemHelp, Key: "?", Label: "Help", Description: "Show keyboard shortcuts"},
		{ID: itemQuit, Key: "q", Label: "Quit", Description: "Exit envmanager"},
	}
}
