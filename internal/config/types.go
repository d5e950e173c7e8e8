package config

// Config represents the complete envmanager configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig points the panel at the host backend
type ServerConfig struct {
	BaseURL string `yaml:"base_url"`
	// RequestTimeoutSeconds of 0 disables the timeout; the panel makes one best-effort fetch.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
}

// UIConfig controls the dialog geometry
type UIConfig struct {
	DialogWidth      int `yaml:"dialog_width"`
	MaxHeightPercent int `yaml:"max_height_percent"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"`
	// File receives TUI logs. Empty selects the per-user default.
	File string `yaml:"file"`
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	return e.Path + ": " + e.Message
}
