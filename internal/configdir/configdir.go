package configdir

import (
	"os"
	"path/filepath"
)

const defaultConfigDir = "/etc/envmanager"

// ConfigDir resolves the system configuration directory, honoring ENVMANAGER_CONFIG_DIR
func ConfigDir() string {
	if env := os.Getenv("ENVMANAGER_CONFIG_DIR"); env != "" {
		if abs, err := filepath.Abs(env); err == nil {
			return abs
		}
	}
	return defaultConfigDir
}
