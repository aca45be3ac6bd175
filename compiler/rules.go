package compiler

import (
	"strconv"
	"strings"

	"github.com/robbyt/go-hlsyntax/grammar"
)

func builtinRules() map[grammar.Kind]RuleConstructor {
	return map[grammar.Kind]RuleConstructor{
		grammar.KindDetectChar:   newDetectChar,
		grammar.KindDetect2Chars: newDetect2Chars,
		grammar.KindAnyChar:      newAnyChar,
		grammar.KindStringDetect: newStringDetect,
		grammar.KindWordDetect:   newWordDetect,
		grammar.KindRegExpr:      newRegExpr,
		grammar.KindKeyword:      newKeyword,
		grammar.KindInt:          newInt,
		grammar.KindFloat:        newFloat,
		grammar.KindRangeDetect:  newRangeDetect,
		grammar.KindIncludeRules: newIncludeRules,
		grammar.KindHlCOct: simpleRule(func(p grammar.RuleParams) grammar.Rule {
			return &grammar.HlCOct{RuleParams: p}
		}),
		grammar.KindHlCHex: simpleRule(func(p grammar.RuleParams) grammar.Rule {
			return &grammar.HlCHex{RuleParams: p}
		}),
		grammar.KindHlCStringChar: simpleRule(func(p grammar.RuleParams) grammar.Rule {
			return &grammar.HlCStringChar{RuleParams: p}
		}),
		grammar.KindHlCChar: simpleRule(func(p grammar.RuleParams) grammar.Rule {
			return &grammar.HlCChar{RuleParams: p}
		}),
		grammar.KindLineContinue: simpleRule(func(p grammar.RuleParams) grammar.Rule {
			return &grammar.LineContinue{RuleParams: p}
		}),
		grammar.KindDetectSpaces: simpleRule(func(p grammar.RuleParams) grammar.Rule {
			return &grammar.DetectSpaces{RuleParams: p}
		}),
		grammar.KindDetectIdentifier: simpleRule(func(p grammar.RuleParams) grammar.Rule {
			return &grammar.DetectIdentifier{RuleParams: p}
		}),
	}
}

// simpleRule adapts a variant without fields beyond the shared block.
func simpleRule(wrap func(grammar.RuleParams) grammar.Rule) RuleConstructor {
	return func(e *RuleElement) (grammar.Rule, error) {
		p, err := e.Params()
		if err != nil {
			return nil, err
		}
		return wrap(p), nil
	}
}

func newDetectChar(e *RuleElement) (grammar.Rule, error) {
	p, err := e.Params()
	if err != nil {
		return nil, err
	}
	char, _ := e.Required("char", "")
	rule := &grammar.DetectChar{RuleParams: p, Char: decodeEscapes(char)}

	if p.Dynamic {
		index, convErr := strconv.Atoi(strings.TrimSpace(rule.Char))
		if convErr != nil || index <= 0 {
			e.Warn(grammar.DiagInvalidIndex, "invalid DetectChar capture index %q, rule disabled", char)
			index = 0
		}
		rule.Index = index
		rule.Char = ""
	}
	return rule, nil
}

func newDetect2Chars(e *RuleElement) (grammar.Rule, error) {
	p, err := e.Params()
	if err != nil {
		return nil, err
	}
	first, ok1 := e.Required("char", "")
	second, ok2 := e.Required("char1", "")

	rule := &grammar.Detect2Chars{RuleParams: p}
	if ok1 && ok2 {
		rule.Chars = decodeEscapes(first) + decodeEscapes(second)
	}
	return rule, nil
}

func newAnyChar(e *RuleElement) (grammar.Rule, error) {
	p, err := e.Params()
	if err != nil {
		return nil, err
	}
	chars, _ := e.Required("String", "")
	return &grammar.AnyChar{RuleParams: p, Chars: chars}, nil
}

func newStringDetect(e *RuleElement) (grammar.Rule, error) {
	p, err := e.Params()
	if err != nil {
		return nil, err
	}
	text, _ := e.Required("String", "")
	return &grammar.StringDetect{RuleParams: p, Text: text}, nil
}

func newWordDetect(e *RuleElement) (grammar.Rule, error) {
	insensitive, err := e.Bool("insensitive", false)
	if err != nil {
		return nil, err
	}
	p, err := e.Params()
	if err != nil {
		return nil, err
	}
	text, _ := e.Required("String", "")
	return &grammar.WordDetect{RuleParams: p, Text: text, Insensitive: insensitive}, nil
}

func newRegExpr(e *RuleElement) (grammar.Rule, error) {
	insensitive, err := e.Bool("insensitive", false)
	if err != nil {
		return nil, err
	}
	p, err := e.Params()
	if err != nil {
		return nil, err
	}

	rule := &grammar.RegExpr{RuleParams: p, Insensitive: insensitive}
	if pattern, ok := e.Required("String", ""); ok {
		rule.Pattern = decodeOctal(pattern)
		rule.WordStart, rule.LineStart = regexpHints(rule.Pattern)
	}
	return rule, nil
}

func newKeyword(e *RuleElement) (grammar.Rule, error) {
	insensitive, err := e.Bool("insensitive", false)
	if err != nil {
		return nil, err
	}
	p, err := e.Params()
	if err != nil {
		return nil, err
	}

	name, _ := e.Required("String", "")
	words, ok := e.Parser().List(name)
	if !ok {
		e.Warn(grammar.DiagMissingList, "list %q not found, keyword never matches", name)
		words = []string{}
	}
	return &grammar.Keyword{RuleParams: p, List: name, Words: words, Insensitive: insensitive}, nil
}

func newInt(e *RuleElement) (grammar.Rule, error) {
	children, err := e.Children()
	if err != nil {
		return nil, err
	}
	p, err := e.Params()
	if err != nil {
		return nil, err
	}
	return &grammar.Int{RuleParams: p, Children: children}, nil
}

func newFloat(e *RuleElement) (grammar.Rule, error) {
	children, err := e.Children()
	if err != nil {
		return nil, err
	}
	p, err := e.Params()
	if err != nil {
		return nil, err
	}
	return &grammar.Float{RuleParams: p, Children: children}, nil
}

func newRangeDetect(e *RuleElement) (grammar.Rule, error) {
	p, err := e.Params()
	if err != nil {
		return nil, err
	}
	start, ok1 := e.Required("char", "")
	end, ok2 := e.Required("char1", "")
	if !ok1 || !ok2 {
		start, end = "", ""
	}
	return &grammar.RangeDetect{RuleParams: p, Start: start, End: end}, nil
}

// newIncludeRules resolves its target by name. The context attribute also
// yields the rule's switcher like any other rule, but problems with it are
// reported once, by the target lookup.
func newIncludeRules(e *RuleElement) (grammar.Rule, error) {
	p, err := e.params(false)
	if err != nil {
		return nil, err
	}

	rule := &grammar.IncludeRules{RuleParams: p}
	name, ok := e.Required("context", "")
	rule.TargetName = name
	rule.Switcher, _ = parseSwitch(e.el.AttrOr("context", opStay), e.b.parser.Context)
	if !ok {
		rule.Target = e.Parser().DefaultContext()
		return rule, nil
	}
	target, err := e.b.includeTarget(e, name)
	if err != nil {
		return nil, err
	}
	rule.Target = target
	return rule, nil
}
