package config

import (
	"fmt"
	"net/url"
	"slices"
)

var validLevels = []string{"debug", "info", "warn", "error"}

// Validate checks if the configuration is valid
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateServer()...)
	errors = append(errors, c.validateUI()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateServer() []ValidationError {
	var errors []ValidationError

	u, err := url.Parse(c.Server.BaseURL)
	switch {
	case c.Server.BaseURL == "":
		errors = append(errors, ValidationError{Path: "server.base_url", Message: "must not be empty"})
	case err != nil:
		errors = append(errors, ValidationError{Path: "server.base_url", Message: fmt.Sprintf("invalid URL: %v", err)})
	case u.Scheme != "http" && u.Scheme != "https":
		errors = append(errors, ValidationError{
			Path:    "server.base_url",
			Message: fmt.Sprintf("scheme must be http or https, got '%s'", u.Scheme),
		})
	case u.Host == "":
		errors = append(errors, ValidationError{Path: "server.base_url", Message: "must include a host"})
	}

	if c.Server.RequestTimeoutSeconds < 0 {
		errors = append(errors, ValidationError{
			Path:    "server.request_timeout_seconds",
			Message: fmt.Sprintf("must be non-negative, got %d", c.Server.RequestTimeoutSeconds),
		})
	}

	return errors
}

func (c *Config) validateUI() []ValidationError {
	var errors []ValidationError

	if c.UI.DialogWidth < 40 {
		errors = append(errors, ValidationError{
			Path:    "ui.dialog_width",
			Message: fmt.Sprintf("must be at least 40, got %d", c.UI.DialogWidth),
		})
	}

	if c.UI.MaxHeightPercent < 10 || c.UI.MaxHeightPercent > 100 {
		errors = append(errors, ValidationError{
			Path:    "ui.max_height_percent",
			Message: fmt.Sprintf("must be between 10 and 100, got %d", c.UI.MaxHeightPercent),
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	if slices.Contains(validLevels, c.Logging.Level) {
		return nil
	}

	return []ValidationError{{
		Path:    "logging.level",
		Message: fmt.Sprintf("must be one of %v, got '%s'", validLevels, c.Logging.Level),
	}}
}
