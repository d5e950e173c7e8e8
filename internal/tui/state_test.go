package tui

import (
	"os"
	"path/filepath"
	"testing"

	"envmanager/internal/logging"
)

func TestUIStateManager_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	manager := NewUIStateManager(tmpDir, logging.Discard())

	state := &UIState{
		Selection: 2,
		LastItem:  "Env",
	}

	if err := manager.Save(state); err != nil {
		t.Fatalf("Failed to save state: %v", err)
	}

	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("Failed to load state: %v", err)
	}

	if loaded.Selection != 2 {
		t.Errorf("Expected selection 2, got %d", loaded.Selection)
	}

	if loaded.LastItem != "Env" {
		t.Errorf("Expected last item 'Env', got %s", loaded.LastItem)
	}

	if loaded.Updated.IsZero() {
		t.Error("Expected updated timestamp to be set")
	}
}

func TestUIStateManager_LoadNonExistent(t *testing.T) {
	manager := NewUIStateManager(t.TempDir(), logging.Discard())

	// Load non-existent state should return default state
	state, err := manager.Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if state.Selection != 0 {
		t.Errorf("Expected default selection 0, got %d", state.Selection)
	}

	if state.LastItem != "" {
		t.Errorf("Expected empty last item, got %s", state.LastItem)
	}
}

func TestUIStateManager_LoadCorrupt(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, UIStateFileName), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	manager := NewUIStateManager(tmpDir, logging.Discard())
	if _, err := manager.Load(); err == nil {
		t.Error("Expected error for corrupt state file")
	}
}

func TestUIStateManager_AtomicWrite(t *testing.T) {
	tmpDir := t.TempDir()
	manager := NewUIStateManager(tmpDir, logging.Discard())

	if err := manager.Save(&UIState{}); err != nil {
		t.Fatalf("Failed to save state: %v", err)
	}

	// Verify temp file doesn't exist
	tmpPath := filepath.Join(tmpDir, "ui_state.json.tmp")
	if _, err := os.Stat(tmpPath); !os.IsNotExist(err) {
		t.Errorf("Temp file should not exist after save")
	}

	// Verify actual file exists
	statePath := filepath.Join(tmpDir, "ui_state.json")
	if _, err := os.Stat(statePath); err != nil {
		t.Errorf("State file should exist: %v", err)
	}
}

func TestUIStateManager_Disabled(t *testing.T) {
	manager := NewUIStateManager("", logging.Discard())

	if manager.Enabled() {
		t.Error("Expected manager without directory to be disabled")
	}

	if err := manager.Save(&UIState{Selection: 1}); err != nil {
		t.Errorf("Expected no error from disabled save, got %v", err)
	}

	state, err := manager.Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if state.Selection != 0 {
		t.Errorf("Expected default selection, got %d", state.Selection)
	}
}

func TestDefaultMenuItems(t *testing.T) {
	items := DefaultMenuItems()

	if len(items) != 2 {
		t.Fatalf("Expected 2 built-in menu items, got %d", len(items))
	}

	if items[0].ID != itemHelp || items[0].Key != "?" {
		t.Errorf("Expected help first, got %+v", items[0])
	}

	if items[1].ID != itemQuit || items[1].Key != "q" {
		t.Errorf("Expected quit last, got %+v", items[1])
	}
}
