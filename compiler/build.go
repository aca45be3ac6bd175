package compiler

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/robbyt/go-hlsyntax/compiler/internal/xmldoc"
	"github.com/robbyt/go-hlsyntax/grammar"
	"github.com/robbyt/go-hlsyntax/theme"
)

// build is the state of one compile call.
type build struct {
	c         *Compiler
	logger    *slog.Logger
	syntax    *grammar.Syntax
	parser    *grammar.Parser
	formats   map[string]theme.TextFormat
	converted map[string]*theme.TextFormat
	diags     []grammar.Diagnostic
}

func (c *Compiler) compileDocument(root *xmldoc.Element, source *url.URL) (*grammar.Syntax, error) {
	b := &build{
		c:         c,
		logger:    c.logger.WithGroup("compile"),
		converted: make(map[string]*theme.TextFormat),
	}

	meta := b.readMetadata(root)
	b.logger = b.logger.With("grammar", meta.Name)
	b.logger.Debug("Starting compilation", "source", source)

	hl := root.Child("highlighting")
	if hl == nil {
		return nil, fmt.Errorf("%w: missing <highlighting> in %q", ErrNoContexts, meta.Name)
	}
	contexts := hl.Child("contexts")
	if contexts == nil {
		return nil, fmt.Errorf("%w: missing <contexts> in %q", ErrNoContexts, meta.Name)
	}
	contextElems := contexts.ChildrenNamed("context")
	if len(contextElems) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoContexts, meta.Name)
	}

	lists := b.loadLists(hl)
	caseSensitive, delims := b.loadKeywordSettings(root.Child("general"), lists)

	b.syntax = grammar.NewSyntax(meta, source)
	parser, err := grammar.NewParser(b.syntax, delims, lists, caseSensitive)
	if err != nil {
		return nil, err
	}
	b.parser = parser
	b.formats = b.loadFormats(hl)

	shells, err := b.declareContexts(contextElems)
	if err != nil {
		return nil, err
	}
	if c.onDeclared != nil {
		c.onDeclared(b.syntax)
	}

	for i, el := range contextElems {
		if err := b.defineContext(shells[i], el); err != nil {
			return nil, err
		}
	}

	for _, d := range b.diags {
		if err := b.syntax.AddDiagnostic(d); err != nil {
			return nil, err
		}
	}
	if err := b.syntax.Seal(); err != nil {
		return nil, err
	}

	b.logger.Debug("Compilation completed",
		"contexts", len(contextElems),
		"diagnostics", len(b.diags))
	return b.syntax, nil
}

// warn records a lenient recovery.
func (b *build) warn(el *xmldoc.Element, code grammar.DiagnosticCode, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	b.logger.Warn(msg, "code", code, "element", el.Name, "line", el.Line)
	b.diags = append(b.diags, grammar.Diagnostic{
		Code:    code,
		Message: msg,
		Element: el.Name,
		Line:    el.Line,
	})
}

// required returns an attribute that the format expects, recording a
// diagnostic and returning def when it is absent.
func (b *build) required(el *xmldoc.Element, name, def string) (string, bool) {
	if v, ok := el.Attr(name); ok {
		return v, true
	}
	b.warn(el, grammar.DiagMissingAttribute, "required attribute %q is not set", name)
	return def, false
}
