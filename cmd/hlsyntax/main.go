// Command hlsyntax compiles a Kate syntax definition and prints a summary of
// the resulting context graph.
//
//	hlsyntax [flags] <grammar.xml | URL | name | ->
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/robbyt/go-hlsyntax"
	"github.com/robbyt/go-hlsyntax/converter/extism"
	risorconv "github.com/robbyt/go-hlsyntax/converter/risor"
	starlarkconv "github.com/robbyt/go-hlsyntax/converter/starlark"
	"github.com/robbyt/go-hlsyntax/grammar"
	"github.com/robbyt/go-hlsyntax/loader"
	"github.com/robbyt/go-hlsyntax/options"
	"github.com/robbyt/go-hlsyntax/provider"
)

func main() {
	os.Exit(run(context.Background(), os.Stdin, os.Stdout, os.Stderr, os.Args[1:]))
}

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type config struct {
	catalogs  stringList
	themeFile string
	starlark  string
	risor     string
	wasm      string
	wasmEntry string
	dump      bool
	logLevel  string
	logFormat string
	target    string
}

func parseArgs(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}
	fs := flag.NewFlagSet("hlsyntax", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Var(&cfg.catalogs, "catalog", "directory of grammars for ##Grammar includes (repeatable)")
	fs.StringVar(&cfg.themeFile, "theme", "", "HCL theme file")
	fs.StringVar(&cfg.starlark, "starlark", "", "Starlark format converter script")
	fs.StringVar(&cfg.risor, "risor", "", "Risor format converter script")
	fs.StringVar(&cfg.wasm, "wasm", "", "Extism WASM format converter plugin")
	fs.StringVar(&cfg.wasmEntry, "wasm-entry", extism.DefaultEntryPoint, "exported function of the WASM plugin")
	fs.BoolVar(&cfg.dump, "dump", false, "print every context and rule")
	fs.StringVar(&cfg.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.StringVar(&cfg.logFormat, "log-format", "text", "log format: text or json")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: hlsyntax [flags] <grammar.xml | URL | name | ->\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errors.New("exactly one grammar argument is required")
	}
	cfg.target = fs.Arg(0)
	return cfg, nil
}

func newHandler(w io.Writer, level, format string) (slog.Handler, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return slog.NewTextHandler(w, opts), nil
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	}
	return nil, fmt.Errorf("invalid log format %q", format)
}

func diskLoader(path string) (loader.Loader, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return loader.NewFromDisk(abs)
}

// converterOptions builds the converter chain in flag order: starlark, risor, wasm.
// The returned cleanup releases the WASM plugin.
func converterOptions(ctx context.Context, cfg *config, handler slog.Handler) ([]options.Option, func(), error) {
	var opts []options.Option
	cleanup := func() {}

	if cfg.starlark != "" {
		l, err := diskLoader(cfg.starlark)
		if err != nil {
			return nil, cleanup, err
		}
		c, err := starlarkconv.NewFromLoader(l, starlarkconv.WithLogHandler(handler))
		if err != nil {
			return nil, cleanup, fmt.Errorf("starlark converter: %w", err)
		}
		opts = append(opts, options.WithFormatConverter(c.Func(ctx)))
	}

	if cfg.risor != "" {
		l, err := diskLoader(cfg.risor)
		if err != nil {
			return nil, cleanup, err
		}
		c, err := risorconv.NewFromLoader(l, risorconv.WithLogHandler(handler))
		if err != nil {
			return nil, cleanup, fmt.Errorf("risor converter: %w", err)
		}
		opts = append(opts, options.WithFormatConverter(c.Func(ctx)))
	}

	if cfg.wasm != "" {
		l, err := diskLoader(cfg.wasm)
		if err != nil {
			return nil, cleanup, err
		}
		c, err := extism.NewFromLoader(ctx, l,
			extism.WithLogHandler(handler),
			extism.WithEntryPoint(cfg.wasmEntry),
		)
		if err != nil {
			return nil, cleanup, fmt.Errorf("wasm converter: %w", err)
		}
		cleanup = func() { _ = c.Close(ctx) }
		opts = append(opts, options.WithFormatConverter(c.Func(ctx)))
	}

	return opts, cleanup, nil
}

func run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args []string) int {
	cfg, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	handler, err := newHandler(stderr, cfg.logLevel, cfg.logFormat)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	syn, err := compile(ctx, cfg, stdin, handler)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if err := printSyntax(stdout, syn, cfg.dump); err != nil {
		return 1
	}
	return 0
}

func compile(ctx context.Context, cfg *config, stdin io.Reader, handler slog.Handler) (*grammar.Syntax, error) {
	opts := []options.Option{options.WithLogger(handler)}
	if cfg.themeFile != "" {
		opts = append(opts, options.WithThemeFile(cfg.themeFile))
	}

	convOpts, cleanup, err := converterOptions(ctx, cfg, handler)
	defer cleanup()
	if err != nil {
		return nil, err
	}
	opts = append(opts, convOpts...)

	var manager *provider.Manager
	if len(cfg.catalogs) > 0 {
		catalog, err := hlsyntax.NewCatalog(cfg.catalogs, opts...)
		if err != nil {
			return nil, err
		}
		manager, err = hlsyntax.NewManager(catalog, opts...)
		if err != nil {
			return nil, err
		}
		if _, ok := catalog.Lookup(cfg.target); ok {
			return manager.SyntaxByName(cfg.target)
		}
		opts = append(opts, options.WithProvider(manager))
	}

	var l loader.Loader
	if cfg.target == "-" {
		l, err = loader.NewFromIoReader(stdin, "stdin")
	} else {
		l, err = loader.InferLoader(cfg.target)
	}
	if err != nil {
		return nil, err
	}
	return hlsyntax.FromLoader(l, opts...)
}

func printSyntax(w io.Writer, syn *grammar.Syntax, dump bool) error {
	meta := syn.Metadata()
	parser := syn.Parser()

	lines := []string{
		fmt.Sprintf("Syntax:      %s", meta.Name),
		fmt.Sprintf("Section:     %s", meta.Section),
		fmt.Sprintf("Extensions:  %s", strings.Join(meta.Extensions, ";")),
		fmt.Sprintf("Source:      %s", syn.SourceURL()),
		fmt.Sprintf("Contexts:    %d (default %q)", len(parser.Contexts()), parser.DefaultContext().Name()),
		fmt.Sprintf("Lists:       %d", len(parser.ListNames())),
		fmt.Sprintf("Diagnostics: %d", len(syn.Diagnostics())),
	}
	for _, d := range syn.Diagnostics() {
		lines = append(lines, "  "+d.String())
	}

	if dump {
		for _, ctx := range parser.Contexts() {
			lines = append(lines, "", ctx.String(),
				fmt.Sprintf("  lineEnd: %s  lineBegin: %s  fallthrough: %s",
					ctx.LineEnd(), ctx.LineBegin(), ctx.Fallthrough()))
			lines = appendRules(lines, ctx.Rules(), "  ")
		}
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func appendRules(lines []string, rules []grammar.Rule, indent string) []string {
	for _, r := range rules {
		lines = append(lines, indent+r.String())
		switch v := r.(type) {
		case *grammar.Int:
			lines = appendRules(lines, v.Children, indent+"  ")
		case *grammar.Float:
			lines = appendRules(lines, v.Children, indent+"  ")
		}
	}
	return lines
}
