package compiler

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/robbyt/go-hlsyntax/compiler/internal/xmldoc"
	"github.com/robbyt/go-hlsyntax/grammar"
)

// RuleConstructor builds one rule from its element.
type RuleConstructor func(e *RuleElement) (grammar.Rule, error)

// Registry maps rule element tags to constructors. Adding a rule kind is a
// Register call; existing constructors are untouched.
type Registry struct {
	constructors map[string]RuleConstructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]RuleConstructor)}
}

// DefaultRegistry returns a registry holding every built-in rule kind.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for tag, ctor := range builtinRules() {
		r.constructors[string(tag)] = ctor
	}
	return r
}

// Register adds or replaces the constructor for tag.
func (r *Registry) Register(tag string, ctor RuleConstructor) error {
	if tag == "" {
		return fmt.Errorf("%w: empty tag", ErrRegistration)
	}
	if ctor == nil {
		return fmt.Errorf("%w: nil constructor for %q", ErrRegistration, tag)
	}
	r.constructors[tag] = ctor
	return nil
}

// Lookup returns the constructor registered for tag.
func (r *Registry) Lookup(tag string) (RuleConstructor, bool) {
	ctor, ok := r.constructors[tag]
	return ctor, ok
}

// Tags returns the registered tags, sorted.
func (r *Registry) Tags() []string {
	return slices.Sorted(maps.Keys(r.constructors))
}

// Clone returns an independent copy.
func (r *Registry) Clone() *Registry {
	return &Registry{constructors: maps.Clone(r.constructors)}
}

// RuleElement is the view of a rule element handed to a RuleConstructor.
type RuleElement struct {
	b      *build
	el     *xmldoc.Element
	parent *grammar.Context
}

// Tag returns the element tag.
func (e *RuleElement) Tag() string { return e.el.Name }

// Line returns the 1-based source line of the element.
func (e *RuleElement) Line() int { return e.el.Line }

// Context returns the context the rule belongs to.
func (e *RuleElement) Context() *grammar.Context { return e.parent }

// Parser returns the parser being compiled.
func (e *RuleElement) Parser() *grammar.Parser { return e.b.parser }

// Attr returns a raw attribute value.
func (e *RuleElement) Attr(name string) (string, bool) {
	return e.el.Attr(name)
}

// Required returns an attribute the rule expects, recording a diagnostic and
// returning def when it is absent.
func (e *RuleElement) Required(name, def string) (string, bool) {
	return e.b.required(e.el, name, def)
}

// Bool parses a strict boolean attribute. Malformed values abort the compile.
func (e *RuleElement) Bool(name string, def bool) (bool, error) {
	return strictBool(e.el, name, def)
}

// Warn records a diagnostic against the element.
func (e *RuleElement) Warn(code grammar.DiagnosticCode, format string, args ...any) {
	e.b.warn(e.el, code, format, args...)
}

// Params builds the shared parameter block.
func (e *RuleElement) Params() (grammar.RuleParams, error) {
	return e.params(true)
}

func (e *RuleElement) params(withSwitch bool) (grammar.RuleParams, error) {
	p := grammar.RuleParams{
		Context: e.parent,
		Format:  e.parent.Format(),
		Column:  grammar.NoColumn,
	}

	if attr, ok := e.el.Attr("attribute"); ok {
		p.Attribute = strings.ToLower(attr)
		if f, known := e.b.format(attr); known {
			p.Format = f
		} else {
			e.Warn(grammar.DiagUnknownAttribute, "unknown rule attribute %q", attr)
		}
	}

	if withSwitch {
		p.Switcher = e.b.switcher(e.el, e.el.AttrOr("context", opStay))
	}

	var err error
	if p.LookAhead, err = e.Bool("lookAhead", false); err != nil {
		return p, err
	}
	if p.FirstNonSpace, err = e.Bool("firstNonSpace", false); err != nil {
		return p, err
	}
	if p.Dynamic, err = e.Bool("dynamic", false); err != nil {
		return p, err
	}

	if col, ok := e.el.Attr("column"); ok {
		n, convErr := strconv.Atoi(strings.TrimSpace(col))
		if convErr != nil || n < 0 {
			e.Warn(grammar.DiagInvalidColumn, "invalid column %q, rule is unconstrained", col)
		} else {
			p.Column = n
		}
	}
	return p, nil
}

// Children compiles the nested rule elements with the same registry.
func (e *RuleElement) Children() ([]grammar.Rule, error) {
	return e.b.compileRules(e.parent, e.el)
}

// compileRules compiles the child elements of el as rules of ctx.
func (b *build) compileRules(ctx *grammar.Context, el *xmldoc.Element) ([]grammar.Rule, error) {
	children := el.Children()
	rules := make([]grammar.Rule, 0, len(children))
	for _, child := range children {
		ctor, ok := b.c.registry.Lookup(child.Name)
		if !ok {
			b.logger.Error("Unknown rule element", "element", child.Name, "line", child.Line, "context", ctx.Name())
			return nil, fmt.Errorf("%w: <%s> at line %d in context %q", ErrUnknownRule, child.Name, child.Line, ctx.Name())
		}
		rule, err := ctor(&RuleElement{b: b, el: child, parent: ctx})
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
