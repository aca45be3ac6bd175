package grammar

import (
	"fmt"
	"maps"
	"slices"
)

// Parser owns the contexts of one grammar. Contexts live in an arena indexed in
// declaration order; the first declared context is the default one.
type Parser struct {
	syntax        *Syntax
	contexts      []*Context
	byName        map[string]*Context
	lists         map[string][]string
	caseSensitive bool
	delims        DeliminatorSet
	sealed        bool
}

// NewParser creates the parser of syntax. The lists map is taken over by the parser.
func NewParser(syntax *Syntax, delims DeliminatorSet, lists map[string][]string, caseSensitive bool) (*Parser, error) {
	if syntax.sealed {
		return nil, ErrSealed
	}
	if syntax.parser != nil {
		return nil, ErrParserSet
	}
	if lists == nil {
		lists = make(map[string][]string)
	}
	p := &Parser{
		syntax:        syntax,
		byName:        make(map[string]*Context),
		lists:         lists,
		caseSensitive: caseSensitive,
		delims:        delims,
	}
	syntax.parser = p
	return p, nil
}

// DeclareContext allocates an empty context shell at the end of the arena.
// The first declaration of a name registers it; a repeated name still gets a
// shell, but registered is false and the shell is unreachable by name.
func (p *Parser) DeclareContext(name string) (shell *Context, registered bool, err error) {
	if p.sealed {
		return nil, false, ErrSealed
	}
	shell = &Context{parser: p, index: len(p.contexts), name: name}
	p.contexts = append(p.contexts, shell)
	if _, dup := p.byName[name]; dup {
		return shell, false, nil
	}
	p.byName[name] = shell
	return shell, true, nil
}

// Syntax returns the owning syntax.
func (p *Parser) Syntax() *Syntax {
	return p.syntax
}

// DefaultContext returns the first declared context, or nil when none exist.
func (p *Parser) DefaultContext() *Context {
	if len(p.contexts) == 0 {
		return nil
	}
	return p.contexts[0]
}

// Context looks a context up by name.
func (p *Parser) Context(name string) (*Context, bool) {
	c, ok := p.byName[name]
	return c, ok
}

// ContextAt returns the context at arena index i.
func (p *Parser) ContextAt(i int) *Context {
	return p.contexts[i]
}

// Contexts returns every context in declaration order.
func (p *Parser) Contexts() []*Context {
	return slices.Clone(p.contexts)
}

// List returns a keyword list.
func (p *Parser) List(name string) ([]string, bool) {
	words, ok := p.lists[name]
	return words, ok
}

// ListNames returns the keyword list names, sorted.
func (p *Parser) ListNames() []string {
	return slices.Sorted(maps.Keys(p.lists))
}

// CaseSensitive reports whether keywords are matched case-sensitively.
func (p *Parser) CaseSensitive() bool {
	return p.caseSensitive
}

// Deliminators returns the word-boundary set.
func (p *Parser) Deliminators() DeliminatorSet {
	return p.delims
}

func (p *Parser) String() string {
	def := "<none>"
	if c := p.DefaultContext(); c != nil {
		def = c.name
	}
	return fmt.Sprintf("Parser{contexts: %d, default: %s, lists: %d, caseSensitive: %t}",
		len(p.contexts), def, len(p.lists), p.caseSensitive)
}
