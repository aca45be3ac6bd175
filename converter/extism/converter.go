// Package extism runs a WASM plugin as a format converter. The plugin exports
// a function (convert by default) that reads the format as a JSON object with
// the keys of theme.TextFormat.AsMap and writes back a JSON object of the keys
// to change.
package extism

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	extismSDK "github.com/extism/go-sdk"
	"github.com/robbyt/go-hlsyntax/converter"
	"github.com/robbyt/go-hlsyntax/converter/extism/adapters"
	"github.com/robbyt/go-hlsyntax/loader"
	"github.com/robbyt/go-hlsyntax/theme"
	"github.com/tetratelabs/wazero"
)

// DefaultEntryPoint is the export called when no other is configured.
const DefaultEntryPoint = "convert"

// Converter calls an exported plugin function once per format, each call in a
// fresh plugin instance.
type Converter struct {
	plugin     adapters.CompiledPlugin
	entryPoint string

	enableWASI    bool
	runtimeConfig wazero.RuntimeConfig
	hostFunctions []extismSDK.HostFunction

	logHandler slog.Handler
	logger     *slog.Logger
}

// New compiles a WASM module and checks that it exports the entry point.
func New(ctx context.Context, wasm []byte, opts ...FunctionalOption) (*Converter, error) {
	if len(wasm) == 0 {
		return nil, converter.ErrContentNil
	}
	c, err := newConverter(opts...)
	if err != nil {
		return nil, err
	}

	manifest := extismSDK.Manifest{
		Wasm: []extismSDK.Wasm{
			extismSDK.WasmData{Data: wasm},
		},
	}
	config := extismSDK.PluginConfig{
		EnableWasi:    c.enableWASI,
		RuntimeConfig: c.runtimeConfig,
	}
	plugin, err := extismSDK.NewCompiledPlugin(ctx, manifest, config, c.hostFunctions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", converter.ErrCompileFailed, err)
	}

	c.plugin = adapters.NewCompiledPluginAdapter(plugin)
	if err := c.checkEntryPoint(ctx); err != nil {
		_ = c.plugin.Close(ctx)
		return nil, err
	}
	return c, nil
}

// NewFromLoader reads the module from l.
func NewFromLoader(ctx context.Context, l loader.Loader, opts ...FunctionalOption) (*Converter, error) {
	wasm, err := converter.ReadSource(l)
	if err != nil {
		return nil, err
	}
	return New(ctx, wasm, opts...)
}

// NewWithPlugin wraps an already compiled plugin.
func NewWithPlugin(ctx context.Context, plugin adapters.CompiledPlugin, opts ...FunctionalOption) (*Converter, error) {
	if plugin == nil {
		return nil, fmt.Errorf("%w: plugin is nil", converter.ErrContentNil)
	}
	c, err := newConverter(opts...)
	if err != nil {
		return nil, err
	}
	c.plugin = plugin
	if err := c.checkEntryPoint(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func newConverter(opts ...FunctionalOption) (*Converter, error) {
	c := &Converter{enableWASI: true}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}
	c.setupLogger()
	c.applyDefaults()
	return c, nil
}

func (c *Converter) checkEntryPoint(ctx context.Context) error {
	instance, err := c.plugin.Instance(ctx, adapters.NewPluginInstanceConfig())
	if err != nil {
		return fmt.Errorf("failed to create plugin instance: %w", err)
	}
	defer func() { _ = instance.Close(ctx) }()

	if !instance.FunctionExists(c.entryPoint) {
		return fmt.Errorf("%w: %s", converter.ErrNoConvertFunc, c.entryPoint)
	}
	return nil
}

func (c *Converter) String() string {
	return fmt.Sprintf("extism.Converter{EntryPoint: %s}", c.entryPoint)
}

// Convert passes the format as JSON to the entry point.
func (c *Converter) Convert(ctx context.Context, f theme.TextFormat) (theme.TextFormat, error) {
	logger := c.logger.WithGroup("Convert")

	input, err := json.Marshal(f.AsMap())
	if err != nil {
		return f, fmt.Errorf("failed to marshal format: %w", err)
	}

	instance, err := c.plugin.Instance(ctx, adapters.NewPluginInstanceConfig())
	if err != nil {
		return f, fmt.Errorf("%w: failed to create plugin instance: %w", converter.ErrExecFailed, err)
	}
	defer func() {
		if err := instance.Close(ctx); err != nil {
			logger.WarnContext(ctx, "failed to close plugin instance", "error", err)
		}
	}()

	exit, output, err := instance.CallWithContext(ctx, c.entryPoint, input)
	if err != nil {
		if ctx.Err() != nil {
			return f, fmt.Errorf("%w: execution cancelled: %w", converter.ErrExecFailed, ctx.Err())
		}
		return f, fmt.Errorf("%w: %w", converter.ErrExecFailed, err)
	}
	if exit != 0 {
		return f, fmt.Errorf("%w: non-zero exit code %d", converter.ErrExecFailed, exit)
	}

	var m map[string]any
	if err := json.Unmarshal(output, &m); err != nil {
		return f, fmt.Errorf("%w: %w", converter.ErrInvalidResult, err)
	}
	logger.DebugContext(ctx, "plugin returned", "result", m)

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

// Close releases the compiled plugin.
func (c *Converter) Close(ctx context.Context) error {
	return c.plugin.Close(ctx)
}
