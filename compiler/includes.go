package compiler

import (
	"fmt"
	"strings"

	"github.com/robbyt/go-hlsyntax/grammar"
)

// includeTarget resolves an IncludeRules context attribute. Accepted forms are
// "Name" (this grammar), "##Grammar" (default context of another grammar) and
// "Name##Grammar". A missing or unreadable grammar falls back to this parser's
// default context; an included grammar that fails to compile aborts the build.
func (b *build) includeTarget(e *RuleElement, name string) (*grammar.Context, error) {
	fallback := b.parser.DefaultContext()

	if ctx, ok := b.parser.Context(name); ok {
		return ctx, nil
	}

	idx := strings.Index(name, opCross)
	if idx < 0 {
		e.Warn(grammar.DiagUnknownContext, "unknown IncludeRules context %q, using default context", name)
		return fallback, nil
	}
	ctxName, syntaxName := name[:idx], name[idx+len(opCross):]

	if b.c.provider == nil {
		e.Warn(grammar.DiagIncludeFailed, "cannot include %q: no grammar provider", name)
		return fallback, nil
	}

	other, err := b.c.provider.SyntaxByName(syntaxName)
	if err != nil {
		if isCompileFailure(err) {
			return nil, fmt.Errorf("include %q at line %d: %w", name, e.Line(), err)
		}
		e.Warn(grammar.DiagIncludeFailed, "cannot include %q: %v", name, err)
		return fallback, nil
	}
	parser := other.Parser()
	if parser == nil || parser.DefaultContext() == nil {
		e.Warn(grammar.DiagIncludeFailed, "cannot include %q: grammar %q has no contexts", name, syntaxName)
		return fallback, nil
	}

	if ctxName == "" {
		return parser.DefaultContext(), nil
	}
	if ctx, ok := parser.Context(ctxName); ok {
		return ctx, nil
	}
	e.Warn(grammar.DiagUnknownContext, "grammar %q has no context %q, using its default context", syntaxName, ctxName)
	return parser.DefaultContext(), nil
}
