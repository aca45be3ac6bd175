package extism

import (
	"fmt"
	"log/slog"

	extismSDK "github.com/extism/go-sdk"
	"github.com/robbyt/go-hlsyntax/internal/helpers"
	"github.com/tetratelabs/wazero"
)

// FunctionalOption is a function that configures a Converter instance
type FunctionalOption func(*Converter) error

// WithEntryPoint sets the exported function called for each format.
func WithEntryPoint(name string) FunctionalOption {
	return func(c *Converter) error {
		if name == "" {
			return fmt.Errorf("entry point cannot be empty")
		}
		c.entryPoint = name
		return nil
	}
}

// WithWASI enables or disables WASI for the plugin.
func WithWASI(enabled bool) FunctionalOption {
	return func(c *Converter) error {
		c.enableWASI = enabled
		return nil
	}
}

// WithRuntimeConfig sets the wazero runtime configuration used to compile the module.
func WithRuntimeConfig(cfg wazero.RuntimeConfig) FunctionalOption {
	return func(c *Converter) error {
		if cfg == nil {
			return fmt.Errorf("runtime config cannot be nil")
		}
		c.runtimeConfig = cfg
		return nil
	}
}

// WithHostFunctions registers host functions available to the plugin.
func WithHostFunctions(fns ...extismSDK.HostFunction) FunctionalOption {
	return func(c *Converter) error {
		c.hostFunctions = append(c.hostFunctions, fns...)
		return nil
	}
}

// WithLogHandler sets the log handler.
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
		c.logHandler, c.logger = helpers.SetupLogger(c.logHandler, "hlsyntax", "ExtismConverter")
	}
}

func (c *Converter) applyDefaults() {
	if c.entryPoint == "" {
		c.entryPoint = DefaultEntryPoint
	}
	if c.runtimeConfig == nil {
		c.runtimeConfig = wazero.NewRuntimeConfig()
	}
}
