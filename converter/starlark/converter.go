// Package starlark runs a Starlark script as a format converter. The script
// defines convert(format), receives a dict with the keys of
// theme.TextFormat.AsMap and returns a dict of the keys to change.
//
//	def convert(format):
//	    if format["bold"]:
//	        format["color"] = "#ff0000"
//	    return format
package starlark

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/robbyt/go-hlsyntax/converter"
	"github.com/robbyt/go-hlsyntax/loader"
	"github.com/robbyt/go-hlsyntax/theme"
	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

const convertFunc = "convert"

// Converter calls a compiled Starlark convert function. Module globals are
// frozen after loading, so Convert is safe for concurrent use.
type Converter struct {
	name     string
	fn       *starlarkLib.Function
	maxSteps uint64

	logHandler slog.Handler
	logger     *slog.Logger
}

// New compiles source and looks up its convert function.
func New(source []byte, opts ...FunctionalOption) (*Converter, error) {
	return newConverter("converter.star", source, opts...)
}

// NewFromLoader reads the script from l.
func NewFromLoader(l loader.Loader, opts ...FunctionalOption) (*Converter, error) {
	source, err := converter.ReadSource(l)
	if err != nil {
		return nil, err
	}
	return newConverter(l.GetSourceURL().String(), source, opts...)
}

func newConverter(name string, source []byte, opts ...FunctionalOption) (*Converter, error) {
	if len(bytes.TrimSpace(source)) == 0 {
		return nil, converter.ErrContentNil
	}

	c := &Converter{name: name}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}
	c.setupLogger()

	predeclared := standardModules()
	f, err := (&syntax.FileOptions{}).Parse(name, source, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", converter.ErrCompileFailed, err)
	}
	prog, err := starlarkLib.FileProgram(f, predeclared.Has)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", converter.ErrCompileFailed, err)
	}

	globals, err := prog.Init(c.newThread("init"), predeclared)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", converter.ErrExecFailed, err)
	}
	globals.Freeze()

	fn, ok := globals[convertFunc].(*starlarkLib.Function)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not defined", converter.ErrNoConvertFunc, convertFunc)
	}
	if fn.NumParams() != 1 {
		return nil, fmt.Errorf("%w: %s must take exactly one parameter", converter.ErrNoConvertFunc, convertFunc)
	}
	c.fn = fn
	return c, nil
}

func (c *Converter) String() string {
	return "starlark.Converter"
}

func (c *Converter) newThread(name string) *starlarkLib.Thread {
	thread := &starlarkLib.Thread{
		Name: name,
		Print: func(thread *starlarkLib.Thread, msg string) {
			c.logger.Info(msg, "starlark-thread", thread.Name, "script", c.name)
		},
	}
	if c.maxSteps > 0 {
		thread.SetMaxExecutionSteps(c.maxSteps)
	}
	return thread
}

// Convert calls convert(format). Keys missing from the returned dict keep
// their input value.
func (c *Converter) Convert(ctx context.Context, f theme.TextFormat) (theme.TextFormat, error) {
	in, err := toDict(f.AsMap())
	if err != nil {
		return f, fmt.Errorf("failed to convert input: %w", err)
	}

	thread := c.newThread(convertFunc)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()

	v, err := starlarkLib.Call(thread, c.fn, starlarkLib.Tuple{in}, nil)
	if err != nil {
		return f, fmt.Errorf("%w: %w", converter.ErrExecFailed, err)
	}

	m, err := fromDict(v)
	if err != nil {
		return f, fmt.Errorf("%w: %w", converter.ErrInvalidResult, err)
	}
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
