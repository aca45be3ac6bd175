package options

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-hlsyntax/compiler"
	"github.com/robbyt/go-hlsyntax/loader"
	"github.com/robbyt/go-hlsyntax/theme"
)

// Config holds all configuration for compiling a grammar through the facade
type Config struct {
	// Logger for the compiler and provider
	handler slog.Handler
	// Loader for the grammar document
	loader loader.Loader
	// Theme the default styles are cloned from
	theme *theme.Theme
	// Converters applied in order to every resolved format
	converters []theme.FormatConverter
	// Provider for cross-grammar includes
	provider compiler.Provider
	// Rule registry; nil uses the built-in rules
	registry *compiler.Registry
}

// Option is a function that modifies Config
type Option func(*Config) error

// WithLogger sets the log handler
func WithLogger(handler slog.Handler) Option {
	return func(c *Config) error {
		if handler != nil {
			c.handler = handler
		}
		return nil
	}
}

// WithLoader sets the grammar loader
func WithLoader(l loader.Loader) Option {
	return func(c *Config) error {
		if l != nil {
			c.loader = l
		}
		return nil
	}
}

// WithTheme sets the theme
func WithTheme(t *theme.Theme) Option {
	return func(c *Config) error {
		if t != nil {
			c.theme = t
		}
		return nil
	}
}

// WithThemeFile loads an HCL theme file on top of the current theme, or the
// default theme when none is set yet.
func WithThemeFile(path string) Option {
	return func(c *Config) error {
		base := c.theme
		if base == nil {
			base = DefaultTheme()
		}
		t, err := theme.LoadHCL(path, base)
		if err != nil {
			return fmt.Errorf("failed to load theme: %w", err)
		}
		c.theme = t
		return nil
	}
}

// WithFormatConverter appends a converter; converters run in the order given.
func WithFormatConverter(conv theme.FormatConverter) Option {
	return func(c *Config) error {
		if conv != nil {
			c.converters = append(c.converters, conv)
		}
		return nil
	}
}

// WithProvider sets the provider used to resolve ##Grammar includes
func WithProvider(p compiler.Provider) Option {
	return func(c *Config) error {
		if p != nil {
			c.provider = p
		}
		return nil
	}
}

// WithRegistry sets a custom rule registry
func WithRegistry(r *compiler.Registry) Option {
	return func(c *Config) error {
		if r != nil {
			c.registry = r
		}
		return nil
	}
}

// Validate performs basic validation on the configuration
func (c *Config) Validate() error {
	if c.loader == nil {
		return fmt.Errorf("no loader specified")
	}
	if c.handler == nil {
		return fmt.Errorf("no log handler specified")
	}
	return nil
}

// GetHandler returns the configured log handler
func (c *Config) GetHandler() slog.Handler {
	return c.handler
}

// SetHandler sets the log handler
func (c *Config) SetHandler(handler slog.Handler) {
	c.handler = handler
}

// GetLoader returns the configured loader
func (c *Config) GetLoader() loader.Loader {
	return c.loader
}

// GetTheme returns the configured theme
func (c *Config) GetTheme() *theme.Theme {
	return c.theme
}

// GetFormatConverter returns all configured converters chained, or nil
func (c *Config) GetFormatConverter() theme.FormatConverter {
	return theme.Chain(c.converters...)
}

// GetProvider returns the configured provider
func (c *Config) GetProvider() compiler.Provider {
	return c.provider
}

// CompilerOptions translates the config into compiler options. The provider
// is left out when unset.
func (c *Config) CompilerOptions() []compiler.FunctionalOption {
	var opts []compiler.FunctionalOption
	if c.handler != nil {
		opts = append(opts, compiler.WithLogHandler(c.handler))
	}
	if c.theme != nil {
		opts = append(opts, compiler.WithTheme(c.theme))
	}
	if conv := c.GetFormatConverter(); conv != nil {
		opts = append(opts, compiler.WithFormatConverter(conv))
	}
	if c.provider != nil {
		opts = append(opts, compiler.WithProvider(c.provider))
	}
	if c.registry != nil {
		opts = append(opts, compiler.WithRegistry(c.registry))
	}
	return opts
}
