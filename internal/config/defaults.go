package config

const (
	// DefaultBaseURL is where the node-editor host serves its API out of the box.
	DefaultBaseURL = "http://127.0.0.1:8188"
	// DefaultDialogWidth matches the 720px dialog at a typical terminal cell width.
	DefaultDialogWidth = 84
	// DefaultMaxHeightPercent caps the dialog at 85% of the terminal height.
	DefaultMaxHeightPercent = 85
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			BaseURL:               DefaultBaseURL,
			RequestTimeoutSeconds: 0,
		},
		UI: UIConfig{
			DialogWidth:      DefaultDialogWidth,
			MaxHeightPercent: DefaultMaxHeightPercent,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}
