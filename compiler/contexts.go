package compiler

import (
	"strings"

	"github.com/robbyt/go-hlsyntax/compiler/internal/xmldoc"
	"github.com/robbyt/go-hlsyntax/grammar"
	"github.com/robbyt/go-hlsyntax/theme"
)

const attributeNotSet = "<not set>"

// declareContexts is phase one: an empty shell per <context>, in document
// order, registered by name before any body is compiled.
func (b *build) declareContexts(elems []*xmldoc.Element) ([]*grammar.Context, error) {
	shells := make([]*grammar.Context, 0, len(elems))
	for _, el := range elems {
		name, _ := b.required(el, "name", "")
		shell, registered, err := b.parser.DeclareContext(name)
		if err != nil {
			return nil, err
		}
		if !registered {
			b.warn(el, grammar.DiagDuplicateContext, "duplicate context %q, later declaration is unreachable", name)
		}
		shells = append(shells, shell)
	}
	return shells, nil
}

// defineContext is phase two for one shell.
func (b *build) defineContext(ctx *grammar.Context, el *xmldoc.Element) error {
	def := grammar.ContextDefinition{}

	attribute := strings.ToLower(el.AttrOr("attribute", attributeNotSet))
	if attribute != attributeNotSet {
		def.Attribute = attribute
		if f, ok := b.format(attribute); ok {
			def.Format = f
		} else {
			b.warn(el, grammar.DiagUnknownAttribute, "unknown context attribute %q", attribute)
			def.Format = b.c.converter.Apply(theme.TextFormat{}).Clone()
		}
	}

	def.LineEnd = b.switcher(el, el.AttrOr("lineEndContext", opStay))
	def.LineBegin = b.switcher(el, el.AttrOr("lineBeginContext", opStay))
	if b.lenientBool(el, "fallthrough", false) {
		def.Fallthrough = b.switcher(el, el.AttrOr("fallthroughContext", opStay))
	}
	def.Dynamic = b.lenientBool(el, "dynamic", false)

	if err := ctx.Define(def); err != nil {
		return err
	}

	rules, err := b.compileRules(ctx, el)
	if err != nil {
		return err
	}
	return ctx.SetRules(rules)
}
