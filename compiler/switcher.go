package compiler

import (
	"fmt"
	"strings"

	"github.com/robbyt/go-hlsyntax/compiler/internal/xmldoc"
	"github.com/robbyt/go-hlsyntax/grammar"
)

const (
	opPop   = "#pop"
	opStay  = "#stay"
	opCross = "##"
)

type switchProblem struct {
	code grammar.DiagnosticCode
	msg  string
}

// parseSwitch compiles a switch action such as "#pop#popEnd". It returns nil
// when the action neither pops nor targets a context.
func parseSwitch(op string, lookup func(string) (*grammar.Context, bool)) (*grammar.ContextSwitcher, *switchProblem) {
	pops := 0
	rest := op
	for strings.HasPrefix(rest, opPop) {
		pops++
		rest = rest[len(opPop):]
	}

	var target *grammar.Context
	var problem *switchProblem
	switch {
	case rest == opStay:
		if pops > 0 {
			problem = &switchProblem{grammar.DiagInvalidSwitch, fmt.Sprintf("invalid context operation %q", op)}
		}
	case rest == "":
	case strings.HasPrefix(rest, opCross):
		// Cross-grammar switches are only resolved by IncludeRules.
	default:
		if ctx, ok := lookup(rest); ok {
			target = ctx
		} else {
			problem = &switchProblem{grammar.DiagUnknownContext, fmt.Sprintf("unknown context %q", rest)}
		}
	}

	if pops == 0 && target == nil {
		return nil, problem
	}
	return &grammar.ContextSwitcher{PopsCount: pops, Target: target, Operation: op}, problem
}

func (b *build) switcher(el *xmldoc.Element, op string) *grammar.ContextSwitcher {
	sw, problem := parseSwitch(op, b.parser.Context)
	if problem != nil {
		b.warn(el, problem.code, "%s", problem.msg)
	}
	return sw
}
