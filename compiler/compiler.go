// Package compiler turns Kate XML syntax-highlighting definitions into the
// immutable grammar graph defined by package grammar.
//
// Compilation is lenient: missing or unknown attributes, styles, lists and
// context names are recorded as diagnostics on the resulting Syntax and replaced
// by defaults. Only an unregistered rule element or a malformed boolean rule
// parameter aborts a compile.
package compiler

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/robbyt/go-hlsyntax/compiler/internal/xmldoc"
	"github.com/robbyt/go-hlsyntax/grammar"
	"github.com/robbyt/go-hlsyntax/theme"
)

// Provider resolves another grammar by name for ##Grammar includes. It must
// memoize by name and make a grammar visible once its contexts are declared.
type Provider interface {
	SyntaxByName(name string) (*grammar.Syntax, error)
}

// SourceLoader is the subset of loader.Loader the compiler needs.
type SourceLoader interface {
	GetReader() (io.ReadCloser, error)
	GetSourceURL() *url.URL
}

type Compiler struct {
	theme      *theme.Theme
	converter  theme.FormatConverter
	provider   Provider
	registry   *Registry
	onDeclared func(*grammar.Syntax)
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a Compiler with the provided options.
func New(opts ...FunctionalOption) (*Compiler, error) {
	c := &Compiler{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("error applying compiler option: %w", err)
		}
	}

	c.setupLogger()
	c.applyDefaults()

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid compiler configuration: %w", err)
	}
	return c, nil
}

func (c *Compiler) String() string {
	return "hlsyntax.Compiler"
}

// Compile reads a grammar document and compiles it. The reader is closed.
// source is recorded on the Syntax and may be nil.
func (c *Compiler) Compile(reader io.ReadCloser, source *url.URL) (*grammar.Syntax, error) {
	if reader == nil {
		return nil, ErrContentNil
	}

	root, parseErr := xmldoc.Parse(reader)
	if err := reader.Close(); err != nil {
		return nil, fmt.Errorf("failed to close reader: %w", err)
	}
	if parseErr != nil {
		c.logger.Warn("Grammar is not well-formed XML", "source", source, "error", parseErr)
		return nil, fmt.Errorf("%w: %w", ErrParseXML, parseErr)
	}

	return c.compileDocument(root, source)
}

// CompileLoader fetches the grammar from l and compiles it.
func (c *Compiler) CompileLoader(l SourceLoader) (*grammar.Syntax, error) {
	if l == nil {
		return nil, ErrContentNil
	}
	reader, err := l.GetReader()
	if err != nil {
		return nil, fmt.Errorf("failed to get grammar reader: %w", err)
	}
	return c.Compile(reader, l.GetSourceURL())
}

// ReadMetadata reads only the root element attributes of a grammar document.
func ReadMetadata(r io.Reader) (grammar.Metadata, error) {
	root, err := xmldoc.ParseRoot(r)
	if err != nil {
		return grammar.Metadata{}, fmt.Errorf("%w: %w", ErrParseXML, err)
	}
	b := &build{logger: slog.New(slog.DiscardHandler)}
	return b.readMetadata(root), nil
}
