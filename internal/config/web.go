package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/flames/pkg/formatting"
)

const (
	EnvWebTitle       = "FLAMES_WEB_TITLE"
	EnvWebMaxFormSize = "FLAMES_WEB_MAX_FORM_SIZE"
)

// WebConfig holds settings for the HTML site.
type WebConfig struct {
	Title       string `toml:"title"`
	MaxFormSize string `toml:"max_form_size"`
}

// MaxFormSizeBytes returns MaxFormSize in bytes. Finalize guarantees it parses.
func (c *WebConfig) MaxFormSizeBytes() int64 {
	n, _ := formatting.ParseBytes(c.MaxFormSize)
	return n
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *WebConfig) Finalize() error {
	if c.Title == "" {
		c.Title = "FLAMES"
	}
	if c.MaxFormSize == "" {
		c.MaxFormSize = "16KB"
	}
	if v := os.Getenv(EnvWebTitle); v != "" {
		c.Title = v
	}
	if v := os.Getenv(EnvWebMaxFormSize); v != "" {
		c.MaxFormSize = v
	}

	n, err := formatting.ParseBytes(c.MaxFormSize)
	if err != nil {
		return fmt.Errorf("invalid max_form_size: %w", err)
	}
	if n < 1 {
		return fmt.Errorf("max_form_size must be positive: %q", c.MaxFormSize)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *WebConfig) Merge(overlay *WebConfig) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.MaxFormSize != "" {
		c.MaxFormSize = overlay.MaxFormSize
	}
}
