package options

import (
	"log/slog"
	"os"

	"github.com/robbyt/go-hlsyntax/theme"
)

// DefaultConfig initializes a Config with sensible defaults
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.SetHandler(DefaultHandler())
	cfg.theme = DefaultTheme()
	return cfg
}

// DefaultHandler returns the default logging handler
func DefaultHandler() slog.Handler {
	return slog.NewTextHandler(os.Stderr, nil)
}

// DefaultTheme returns the built-in theme
func DefaultTheme() *theme.Theme {
	return theme.Default()
}

// WithDefaults applies default values to any config properties that are nil
func WithDefaults() Option {
	return func(c *Config) error {
		if c.handler == nil {
			c.handler = DefaultHandler()
		}
		if c.theme == nil {
			c.theme = DefaultTheme()
		}
		return nil
	}
}
