// Package converter adapts scripted format converters to theme.FormatConverter.
// Backends live in the starlark, risor and extism subpackages; each receives
// the format as a map with the keys of theme.TextFormat.AsMap and returns a
// map of the keys it wants to change.
package converter

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/robbyt/go-hlsyntax/loader"
	"github.com/robbyt/go-hlsyntax/theme"
)

// Converter maps one format to another.
type Converter interface {
	Convert(ctx context.Context, f theme.TextFormat) (theme.TextFormat, error)
	String() string
}

// Func returns a theme.FormatConverter running c with ctx. A failed conversion
// is logged and leaves the format unchanged.
func Func(ctx context.Context, c Converter, logger *slog.Logger) theme.FormatConverter {
	if c == nil {
		return nil
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return func(f theme.TextFormat) theme.TextFormat {
		out, err := c.Convert(ctx, f)
		if err != nil {
			logger.WarnContext(ctx, "format conversion failed, keeping original",
				"converter", c.String(), "format", f.String(), "error", err)
			return f
		}
		return out
	}
}

// ReadSource reads a script or module from l.
func ReadSource(l loader.Loader) ([]byte, error) {
	if l == nil {
		return nil, fmt.Errorf("%w: loader is nil", ErrContentNil)
	}
	reader, err := l.GetReader()
	if err != nil {
		return nil, fmt.Errorf("failed to get converter source: %w", err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read converter source: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrContentNil
	}
	return data, nil
}
