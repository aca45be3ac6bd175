package compiler

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-hlsyntax/grammar"
	"github.com/robbyt/go-hlsyntax/internal/helpers"
	"github.com/robbyt/go-hlsyntax/theme"
)

// FunctionalOption is a function that configures a Compiler instance
type FunctionalOption func(*Compiler) error

// WithTheme sets the theme default styles are cloned from.
func WithTheme(t *theme.Theme) FunctionalOption {
	return func(c *Compiler) error {
		if t == nil {
			return fmt.Errorf("theme cannot be nil")
		}
		c.theme = t
		return nil
	}
}

// WithFormatConverter sets the converter applied once to every resolved format.
// A nil converter leaves formats unchanged.
func WithFormatConverter(conv theme.FormatConverter) FunctionalOption {
	return func(c *Compiler) error {
		c.converter = conv
		return nil
	}
}

// WithProvider sets the provider used by IncludeRules to resolve ##Grammar references.
func WithProvider(p Provider) FunctionalOption {
	return func(c *Compiler) error {
		if p == nil {
			return fmt.Errorf("provider cannot be nil")
		}
		c.provider = p
		return nil
	}
}

// WithRegistry replaces the rule registry. The registry is copied.
func WithRegistry(r *Registry) FunctionalOption {
	return func(c *Compiler) error {
		if r == nil {
			return fmt.Errorf("registry cannot be nil")
		}
		c.registry = r.Clone()
		return nil
	}
}

// WithOnContextsDeclared registers a hook called once every context shell of a
// grammar is declared, before any context body or cross-grammar include is
// compiled. Providers use it to cache the grammar early and break include cycles.
func WithOnContextsDeclared(fn func(*grammar.Syntax)) FunctionalOption {
	return func(c *Compiler) error {
		c.onDeclared = fn
		return nil
	}
}

// WithLogHandler creates an option to set the log handler for the compiler.
// This is the preferred option for logging configuration as it provides
// more flexibility through the slog.Handler interface.
func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(c *Compiler) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		c.logHandler = handler
		c.logger = nil
		return nil
	}
}

// WithLogger creates an option to set a specific logger for the compiler.
func WithLogger(logger *slog.Logger) FunctionalOption {
	return func(c *Compiler) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		c.logHandler = nil
		return nil
	}
}

// setupLogger configures the logger and handler based on the current state.
func (c *Compiler) setupLogger() {
	if c.logger != nil {
		c.logHandler = c.logger.Handler()
	} else {
		c.logHandler, c.logger = helpers.SetupLogger(c.logHandler, "hlsyntax", "Compiler")
	}
}

func (c *Compiler) applyDefaults() {
	if c.theme == nil {
		c.theme = theme.Default()
	}
	if c.registry == nil {
		c.registry = DefaultRegistry()
	}
}

func (c *Compiler) validate() error {
	if c.logHandler == nil && c.logger == nil {
		return fmt.Errorf("either log handler or logger must be specified")
	}
	if _, ok := c.theme.Format(theme.StyleNormal); !ok {
		return fmt.Errorf("theme %q has no %s style", c.theme.Name(), theme.StyleNormal)
	}
	return nil
}
