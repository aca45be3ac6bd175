package helpers

import (
	"log/slog"
	"os"
)

// SetupLogger returns a handler and a logger for one component of the library.
// If the provided handler is nil, a text handler writing to stderr is created and
// grouped under rootName.
//
// Parameters:
//   - handler: The slog.Handler to use, or nil for defaults
//   - rootName: The library-level group name (e.g., "hlsyntax")
//   - groupName: Optional component group (e.g., "compiler", "provider")
//
// Returns:
//   - The configured handler
//   - A logger created from the handler
func SetupLogger(handler slog.Handler, rootName string, groupName string) (slog.Handler, *slog.Logger) {
	if handler == nil {
		defaultHandler := slog.NewTextHandler(os.Stderr, nil)
		handler = defaultHandler.WithGroup(rootName)
		slog.New(handler).Warn("Handler is nil, using the default logger configuration.")
	}

	var logger *slog.Logger
	if groupName != "" {
		logger = slog.New(handler.WithGroup(groupName))
	} else {
		logger = slog.New(handler)
	}

	return handler, logger
}
