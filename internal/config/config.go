package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"envmanager/internal/configdir"
)

const (
	systemConfigFile = "config.yaml"
	userConfigDir    = ".envmanager"
	userConfigFile   = "config.yaml"
	userLogFile      = "envmanager.log"

	envBaseURL  = "ENVMANAGER_URL"
	envLogLevel = "ENVMANAGER_LOG_LEVEL"
)

// Load loads and merges configuration.
// Priority: defaults < system config < user config < explicit file < environment.
// An empty explicitPath skips the explicit layer; a non-empty one must exist.
func Load(explicitPath string) (Config, error) {
	cfg := DefaultConfig()

	if err := mergeConfigFile(&cfg, SystemConfigPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load system config: %w", err)
	}

	if userPath := UserConfigPath(); userPath != "" {
		if err := mergeConfigFile(&cfg, userPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("failed to load user config: %w", err)
		}
	}

	if explicitPath != "" {
		if err := mergeConfigFile(&cfg, explicitPath); err != nil {
			return cfg, fmt.Errorf("failed to load config from %s: %w", explicitPath, err)
		}
	}

	applyEnv(&cfg)

	if validationErrors := cfg.Validate(); len(validationErrors) > 0 {
		return cfg, fmt.Errorf("config.validation.error: %v", formatValidationErrors(validationErrors))
	}

	return cfg, nil
}

// LoadFrom loads configuration from a specific file path on top of the defaults
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := mergeConfigFile(&cfg, path); err != nil {
		return cfg, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	if validationErrors := cfg.Validate(); len(validationErrors) > 0 {
		return cfg, fmt.Errorf("config.validation.error: %v", formatValidationErrors(validationErrors))
	}

	return cfg, nil
}

// mergeConfigFile decodes a YAML file over cfg; keys absent from the file keep their value.
func mergeConfigFile(cfg *Config, path string) error {
	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 -- path comes from flags or well-known locations
	if err != nil {
		return err
	}

	overlay := *cfg
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	*cfg = overlay
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(envBaseURL)); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
}

// ApplyOverrides sets command-line values over the loaded configuration and
// validates the result. Empty values leave the configuration unchanged.
func (c *Config) ApplyOverrides(baseURL, logLevel string) error {
	if baseURL != "" {
		c.Server.BaseURL = baseURL
	}
	if logLevel != "" {
		c.Logging.Level = strings.ToLower(logLevel)
	}

	if validationErrors := c.Validate(); len(validationErrors) > 0 {
		return fmt.Errorf("config.validation.error: %v", formatValidationErrors(validationErrors))
	}
	return nil
}

// RequestTimeout converts the configured seconds; zero means no timeout.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSeconds) * time.Second
}

// LogFile returns the configured log file or the per-user default.
func (c Config) LogFile() string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), userLogFile)
	}
	return filepath.Join(homeDir, userConfigDir, userLogFile)
}

// formatValidationErrors formats validation errors for display
func formatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(errs))
	for _, err := range errs {
		b.WriteString("  - " + err.Error() + "\n")
	}
	return b.String()
}

// SystemConfigPath returns the path to the system configuration file
func SystemConfigPath() string {
	return filepath.Join(configdir.ConfigDir(), systemConfigFile)
}

// UserConfigPath returns the path to the user configuration file
func UserConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, userConfigDir, userConfigFile)
}
