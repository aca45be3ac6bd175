package starlark

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-hlsyntax/internal/helpers"
)

// FunctionalOption is a function that configures a Converter instance
type FunctionalOption func(*Converter) error

// WithMaxSteps bounds the Starlark execution steps of one conversion. Zero
// means unlimited.
func WithMaxSteps(steps uint64) FunctionalOption {
	return func(c *Converter) error {
		c.maxSteps = steps
		return nil
	}
}

// WithLogHandler sets the handler receiving script print output and warnings.
func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(c *Converter) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		c.logHandler = handler
		c.logger = nil
		return nil
	}
}

// WithLogger sets a specific logger.
func WithLogger(logger *slog.Logger) FunctionalOption {
	return func(c *Converter) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		c.logHandler = nil
		return nil
	}
}

func (c *Converter) setupLogger() {
	if c.logger != nil {
		c.logHandler = c.logger.Handler()
	} else {
		c.logHandler, c.logger = helpers.SetupLogger(c.logHandler, "hlsyntax", "StarlarkConverter")
	}
}
