package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"envmanager/internal/host"
	"envmanager/internal/logging"
	"envmanager/internal/view"
)

func newTestModel(t *testing.T, exts ...host.Extension) *Model {
	t.Helper()
	reg := &host.Registry{}
	for _, ext := range exts {
		reg.Register(ext)
	}
	return NewModel(view.NewDocument(), reg, logging.Discard(), Options{StateDir: t.TempDir()})
}

func TestModelInit(t *testing.T) {
	m := newTestModel(t)

	if cmd := m.Init(); cmd != nil {
		t.Error("Expected Init to return nil command")
	}
}

func TestModelUpdate_QuitOnQ(t *testing.T) {
	m := newTestModel(t)

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	_, cmd := m.Update(msg)

	if !m.quitting {
		t.Error("Expected quitting to be true after 'q' key")
	}

	if cmd == nil {
		t.Error("Expected quit command to be returned")
	}
}

func TestModelUpdate_QuitOnCtrlC(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	if !m.quitting {
		t.Error("Expected quitting to be true after Ctrl+C")
	}

	if cmd == nil {
		t.Error("Expected quit command to be returned")
	}
}

func TestModelUpdate_OtherKey(t *testing.T) {
	m := newTestModel(t)

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}
	_, cmd := m.Update(msg)

	if m.quitting {
		t.Error("Expected quitting to remain false for non-quit key")
	}

	if cmd != nil {
		t.Error("Expected no command for non-quit key")
	}
}

func TestModelUpdate_WindowSize(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.width != 120 || m.height != 40 {
		t.Errorf("Expected 120x40, got %dx%d", m.width, m.height)
	}
}

func TestModelUpdate_Navigation(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.selection != 1 {
		t.Errorf("Expected selection 1, got %d", m.selection)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.selection != 0 {
		t.Errorf("Expected wrap to 0, got %d", m.selection)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.selection != len(m.items)-1 {
		t.Errorf("Expected wrap to bottom, got %d", m.selection)
	}
}

func TestModelView_NotQuitting(t *testing.T) {
	m := newTestModel(t)
	out := m.View()

	for _, expected := range []string{"Main Menu", "[?] Help", "[q] Quit"} {
		if !strings.Contains(out, expected) {
			t.Errorf("Expected view to contain %q, but it didn't.\nView: %s", expected, out)
		}
	}
}

func TestModelView_Quitting(t *testing.T) {
	m := newTestModel(t)
	m.quitting = true

	if out := m.View(); out != "" {
		t.Errorf("Expected empty view when quitting, got: %s", out)
	}
}

func TestModel_SelectionPersists(t *testing.T) {
	dir := t.TempDir()
	reg := &host.Registry{}
	m := NewModel(view.NewDocument(), reg, logging.Discard(), Options{StateDir: dir})

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	again := NewModel(view.NewDocument(), &host.Registry{}, logging.Discard(), Options{StateDir: dir})
	if again.selection != 1 {
		t.Errorf("Expected restored selection 1, got %d", again.selection)
	}
}
