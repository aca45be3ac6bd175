// Package hlsyntax compiles Kate syntax-highlighting grammars into immutable
// context graphs. It wraps the compiler, loader and provider packages behind a
// few entry points configured with options.Option values.
package hlsyntax

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/robbyt/go-hlsyntax/compiler"
	"github.com/robbyt/go-hlsyntax/grammar"
	"github.com/robbyt/go-hlsyntax/loader"
	"github.com/robbyt/go-hlsyntax/options"
	"github.com/robbyt/go-hlsyntax/provider"
)

// GrammarPattern matches grammar documents inside a directory.
const GrammarPattern = "*.xml"

// Compile compiles the grammar of the configured loader.
func Compile(opts ...options.Option) (*grammar.Syntax, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c, err := compiler.New(cfg.CompilerOptions()...)
	if err != nil {
		return nil, err
	}
	return c.CompileLoader(cfg.GetLoader())
}

// FromString compiles a grammar held in a string.
func FromString(content string, opts ...options.Option) (*grammar.Syntax, error) {
	l, err := loader.NewFromString(content)
	if err != nil {
		return nil, err
	}
	return FromLoader(l, opts...)
}

// FromBytes compiles a grammar held in a byte slice.
func FromBytes(content []byte, opts ...options.Option) (*grammar.Syntax, error) {
	l, err := loader.NewFromBytes(content)
	if err != nil {
		return nil, err
	}
	return FromLoader(l, opts...)
}

// FromFile compiles a grammar file. Relative paths are resolved against the
// working directory.
func FromFile(path string, opts ...options.Option) (*grammar.Syntax, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	l, err := loader.NewFromDisk(abs)
	if err != nil {
		return nil, err
	}
	return FromLoader(l, opts...)
}

// FromHTTP fetches and compiles a grammar with default HTTP options.
func FromHTTP(rawURL string, opts ...options.Option) (*grammar.Syntax, error) {
	l, err := loader.NewFromHTTP(rawURL)
	if err != nil {
		return nil, err
	}
	return FromLoader(l, opts...)
}

// FromLoader compiles the grammar behind l.
func FromLoader(l loader.Loader, opts ...options.Option) (*grammar.Syntax, error) {
	return Compile(append([]options.Option{options.WithLoader(l)}, opts...)...)
}

// NewCatalog indexes the grammar files of each directory.
func NewCatalog(dirs []string, opts ...options.Option) (*provider.Catalog, error) {
	fsyss := make([]fs.FS, 0, len(dirs))
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", loader.ErrGrammarNotAvailable, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: %s is not a directory", loader.ErrGrammarNotAvailable, dir)
		}
		fsyss = append(fsyss, os.DirFS(dir))
	}
	return NewCatalogFS(fsyss, opts...)
}

// NewCatalogFS indexes the grammar files at the root of each file system.
func NewCatalogFS(fsyss []fs.FS, opts ...options.Option) (*provider.Catalog, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	catalog := provider.NewCatalog(cfg.GetHandler())
	for _, fsys := range fsyss {
		if _, err := catalog.AddFS(fsys, GrammarPattern); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// NewManager creates a memoizing provider over catalog. Theme, converters and
// registry from opts apply to every grammar the manager compiles; a provider
// option is ignored since the manager is its own provider.
func NewManager(catalog *provider.Catalog, opts ...options.Option) (*provider.Manager, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	return provider.NewManager(catalog,
		provider.WithLogHandler(cfg.GetHandler()),
		provider.WithCompilerOptions(cfg.CompilerOptions()...),
	)
}

func newConfig(opts ...options.Option) (*options.Config, error) {
	cfg := options.DefaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}
	return cfg, nil
}
