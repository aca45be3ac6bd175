package grammar

import "fmt"

// ContextSwitcher is the action taken on a rule match or at a context boundary:
// pop PopsCount contexts, then push Target if it is set.
type ContextSwitcher struct {
	PopsCount int
	// Target is a lookup-only reference into the owning parser, or into another
	// grammar's parser for cross-grammar includes.
	Target *Context
	// Operation is the raw action text, kept for diagnostics.
	Operation string
}

func (s *ContextSwitcher) String() string {
	if s == nil {
		return "#stay"
	}
	target := "<none>"
	if s.Target != nil {
		target = s.Target.Name()
	}
	return fmt.Sprintf("ContextSwitcher{pops: %d, target: %s, op: %q}", s.PopsCount, target, s.Operation)
}
