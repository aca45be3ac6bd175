package provider

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-hlsyntax/compiler"
	"github.com/robbyt/go-hlsyntax/internal/helpers"
)

// Option configures a Manager.
type Option func(*Manager) error

// WithCompilerOptions adds options passed to every compiler the manager
// creates. WithProvider and WithOnContextsDeclared are always set by the
// manager and override anything given here.
func WithCompilerOptions(opts ...compiler.FunctionalOption) Option {
	return func(m *Manager) error {
		m.compilerOpts = append(m.compilerOpts, opts...)
		return nil
	}
}

// WithLogHandler sets the handler for the manager and its compilers.
func WithLogHandler(handler slog.Handler) Option {
	return func(m *Manager) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		m.logHandler = handler
		m.logger = nil
		return nil
	}
}

// WithLogger sets the logger for the manager and its compilers.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		m.logger = logger
		m.logHandler = nil
		return nil
	}
}

func (m *Manager) setupLogger() {
	if m.logger != nil {
		m.logHandler = m.logger.Handler()
	} else {
		m.logHandler, m.logger = helpers.SetupLogger(m.logHandler, "hlsyntax", "Manager")
	}
}
