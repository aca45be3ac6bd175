// Package risor runs a Risor script as a format converter. The script sees the
// format as the global map "format" and evaluates to a map of the keys to
// change.
//
//	f := format
//	if f["italic"] { f["color"] = "#808080" }
//	f
package risor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	risorLib "github.com/risor-io/risor"
	risorCompiler "github.com/risor-io/risor/compiler"
	risorErrors "github.com/risor-io/risor/errz"
	risorParser "github.com/risor-io/risor/parser"
	"github.com/robbyt/go-hlsyntax/converter"
	"github.com/robbyt/go-hlsyntax/loader"
	"github.com/robbyt/go-hlsyntax/theme"
)

const formatGlobal = "format"

// Converter evaluates compiled Risor bytecode once per format.
type Converter struct {
	code *risorCompiler.Code

	logHandler slog.Handler
	logger     *slog.Logger
}

// New compiles source with "format" declared as a global.
func New(source string, opts ...FunctionalOption) (*Converter, error) {
	if strings.TrimSpace(source) == "" {
		return nil, converter.ErrContentNil
	}

	c := &Converter{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}
	c.setupLogger()

	code, err := compile(source)
	if err != nil {
		return nil, err
	}
	c.code = code
	return c, nil
}

// NewFromLoader reads the script from l.
func NewFromLoader(l loader.Loader, opts ...FunctionalOption) (*Converter, error) {
	source, err := converter.ReadSource(l)
	if err != nil {
		return nil, err
	}
	return New(string(source), opts...)
}

func compile(source string) (*risorCompiler.Code, error) {
	ast, err := risorParser.Parse(context.Background(), source)
	if err != nil {
		errMsg := err.Error()
		var friendlyErr risorErrors.FriendlyError
		if errors.As(err, &friendlyErr) {
			errMsg = friendlyErr.FriendlyErrorMessage()
		}
		return nil, fmt.Errorf("%w: %s", converter.ErrCompileFailed, errMsg)
	}

	cfg := risorLib.NewConfig()
	globalNames := append(cfg.GlobalNames(), formatGlobal)

	code, err := risorCompiler.Compile(ast, risorCompiler.WithGlobalNames(globalNames))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", converter.ErrCompileFailed, err)
	}
	return code, nil
}

func (c *Converter) String() string {
	return "risor.Converter"
}

// Convert evaluates the script with the format bound to the "format" global.
func (c *Converter) Convert(ctx context.Context, f theme.TextFormat) (theme.TextFormat, error) {
	logger := c.logger.WithGroup("Convert")

	result, err := risorLib.EvalCode(ctx, c.code, risorLib.WithGlobal(formatGlobal, f.AsMap()))
	if err != nil {
		return f, fmt.Errorf("%w: %w", converter.ErrExecFailed, err)
	}
	if result == nil {
		return f, fmt.Errorf("%w: script returned nothing", converter.ErrInvalidResult)
	}

	switch result.Type() {
	case "error":
		return f, fmt.Errorf("%w: error returned from script: %s", converter.ErrExecFailed, result.Inspect())
	case "map":
	default:
		return f, fmt.Errorf("%w: expected map, got %s", converter.ErrInvalidResult, result.Type())
	}

	m, ok := result.Interface().(map[string]any)
	if !ok {
		return f, fmt.Errorf("%w: unexpected map type %T", converter.ErrInvalidResult, result.Interface())
	}
	logger.DebugContext(ctx, "script evaluated", "result", m)

	out, err := theme.FormatFromMap(f, m)
	if err != nil {
		return f, fmt.Errorf("%w: %w", converter.ErrInvalidResult, err)
	}
	return out, nil
}

// Func returns c as a theme.FormatConverter bound to ctx.
func (c *Converter) Func(ctx context.Context) theme.FormatConverter {
	return converter.Func(ctx, c, c.logger)
}
