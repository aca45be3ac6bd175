package grammar

import (
	"fmt"

	"github.com/robbyt/go-hlsyntax/theme"
)

// Context is a named lexing state. Shells are created by Parser.DeclareContext and
// populated once by Define and SetRules.
type Context struct {
	parser      *Parser
	index       int
	name        string
	attribute   string
	format      *theme.TextFormat
	lineEnd     *ContextSwitcher
	lineBegin   *ContextSwitcher
	fallThrough *ContextSwitcher
	dynamic     bool
	rules       []Rule
}

// ContextDefinition holds the context-level fields filled in during phase two.
type ContextDefinition struct {
	// Attribute is the lowercased attribute name, empty when not set.
	Attribute string
	// Format is nil when the context inherits the matching rule's format.
	Format      *theme.TextFormat
	LineEnd     *ContextSwitcher
	LineBegin   *ContextSwitcher
	Fallthrough *ContextSwitcher
	Dynamic     bool
}

// Define sets the context-level fields.
func (c *Context) Define(def ContextDefinition) error {
	if c.parser.sealed {
		return ErrSealed
	}
	c.attribute = def.Attribute
	c.format = def.Format
	c.lineEnd = def.LineEnd
	c.lineBegin = def.LineBegin
	c.fallThrough = def.Fallthrough
	c.dynamic = def.Dynamic
	return nil
}

// SetRules sets the ordered rule list. Every rule must belong to c.
func (c *Context) SetRules(rules []Rule) error {
	if c.parser.sealed {
		return ErrSealed
	}
	for _, r := range rules {
		if owner := r.Params().Context; owner != c {
			return fmt.Errorf("%w: rule %s", ErrForeignShell, r.Kind())
		}
	}
	c.rules = rules
	return nil
}

func (c *Context) Parser() *Parser { return c.parser }
func (c *Context) Index() int { return c.index }
func (c *Context) Name() string { return c.name }
func (c *Context) Attribute() string { return c.attribute }
func (c *Context) Format() *theme.TextFormat { return c.format }
func (c *Context) LineEnd() *ContextSwitcher { return c.lineEnd }
func (c *Context) LineBegin() *ContextSwitcher { return c.lineBegin }
func (c *Context) Fallthrough() *ContextSwitcher { return c.fallThrough }
func (c *Context) Dynamic() bool { return c.dynamic }

// Rules returns the ordered rules. The slice must not be modified.
func (c *Context) Rules() []Rule {
	return c.rules
}

func (c *Context) String() string {
	return fmt.Sprintf("Context{name: %q, attribute: %q, rules: %d}", c.name, c.attribute, len(c.rules))
}
