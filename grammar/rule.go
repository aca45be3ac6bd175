package grammar

import (
	"fmt"
	"slices"

	"github.com/robbyt/go-hlsyntax/theme"
)

// Kind is the element tag of a rule variant.
type Kind string

const (
	KindDetectChar       Kind = "DetectChar"
	KindDetect2Chars     Kind = "Detect2Chars"
	KindAnyChar          Kind = "AnyChar"
	KindStringDetect     Kind = "StringDetect"
	KindWordDetect       Kind = "WordDetect"
	KindRegExpr          Kind = "RegExpr"
	KindKeyword          Kind = "keyword"
	KindInt              Kind = "Int"
	KindFloat            Kind = "Float"
	KindHlCOct           Kind = "HlCOct"
	KindHlCHex           Kind = "HlCHex"
	KindHlCStringChar    Kind = "HlCStringChar"
	KindHlCChar          Kind = "HlCChar"
	KindRangeDetect      Kind = "RangeDetect"
	KindLineContinue     Kind = "LineContinue"
	KindIncludeRules     Kind = "IncludeRules"
	KindDetectSpaces     Kind = "DetectSpaces"
	KindDetectIdentifier Kind = "DetectIdentifier"
)

// NoColumn means the rule may match at any column.
const NoColumn = -1

// Rule is implemented by every rule variant. Rules are read-only once their
// context is sealed.
type Rule interface {
	Kind() Kind
	Params() *RuleParams
	String() string
}

// RuleParams is the parameter block shared by every variant.
type RuleParams struct {
	// Context is the owning context (back reference).
	Context *Context
	// Format is the resolved format, possibly the owning context's one.
	Format *theme.TextFormat
	// Attribute is the lowercased raw attribute name, empty when absent.
	Attribute     string
	Switcher      *ContextSwitcher
	LookAhead     bool
	FirstNonSpace bool
	Dynamic       bool
	// Column is NoColumn or a fixed 0-based column.
	Column int
}

// Params returns the shared parameter block.
func (p *RuleParams) Params() *RuleParams {
	return p
}

func (p *RuleParams) describe(kind Kind, extra string) string {
	s := fmt.Sprintf("%s{attribute: %q", kind, p.Attribute)
	if extra != "" {
		s += ", " + extra
	}
	if p.Switcher != nil {
		s += ", switch: " + p.Switcher.Operation
	}
	return s + "}"
}

// DetectChar matches a single character. When Dynamic, Index names a 1-based
// capture of the enclosing dynamic context instead, and Char is empty; Index 0
// disables the rule.
type DetectChar struct {
	RuleParams
	Char  string
	Index int
}

func (r *DetectChar) Kind() Kind { return KindDetectChar }
func (r *DetectChar) String() string {
	if r.Dynamic {
		return r.describe(r.Kind(), fmt.Sprintf("index: %d", r.Index))
	}
	return r.describe(r.Kind(), fmt.Sprintf("char: %q", r.Char))
}

// Detect2Chars matches two consecutive characters. An empty Chars never matches.
type Detect2Chars struct {
	RuleParams
	Chars string
}

func (r *Detect2Chars) Kind() Kind { return KindDetect2Chars }
func (r *Detect2Chars) String() string {
	return r.describe(r.Kind(), fmt.Sprintf("chars: %q", r.Chars))
}

// AnyChar matches one character from Chars.
type AnyChar struct {
	RuleParams
	Chars string
}

func (r *AnyChar) Kind() Kind { return KindAnyChar }
func (r *AnyChar) String() string {
	return r.describe(r.Kind(), fmt.Sprintf("chars: %q", r.Chars))
}

// StringDetect matches a literal string.
type StringDetect struct {
	RuleParams
	Text string
}

func (r *StringDetect) Kind() Kind { return KindStringDetect }
func (r *StringDetect) String() string {
	return r.describe(r.Kind(), fmt.Sprintf("text: %q", r.Text))
}

// WordDetect matches a literal string surrounded by deliminators.
type WordDetect struct {
	RuleParams
	Text        string
	Insensitive bool
}

func (r *WordDetect) Kind() Kind { return KindWordDetect }
func (r *WordDetect) String() string {
	return r.describe(r.Kind(), fmt.Sprintf("text: %q, insensitive: %t", r.Text, r.Insensitive))
}

// RegExpr matches a regular expression. WordStart and LineStart are hints the
// matching engine uses to skip evaluation at positions that cannot match.
type RegExpr struct {
	RuleParams
	Pattern     string
	Insensitive bool
	WordStart   bool
	LineStart   bool
}

func (r *RegExpr) Kind() Kind { return KindRegExpr }
func (r *RegExpr) String() string {
	return r.describe(r.Kind(), fmt.Sprintf("pattern: %q, wordStart: %t, lineStart: %t",
		r.Pattern, r.WordStart, r.LineStart))
}

// Keyword matches any word of a keyword list. An empty Words never matches.
type Keyword struct {
	RuleParams
	List        string
	Words       []string
	Insensitive bool
}

func (r *Keyword) Kind() Kind { return KindKeyword }

// Has reports whether word is in the list.
func (r *Keyword) Has(word string) bool {
	return slices.Contains(r.Words, word)
}

func (r *Keyword) String() string {
	return r.describe(r.Kind(), fmt.Sprintf("list: %q, words: %d", r.List, len(r.Words)))
}

// Int matches a decimal integer, then tries Children as suffixes.
type Int struct {
	RuleParams
	Children []Rule
}

func (r *Int) Kind() Kind { return KindInt }
func (r *Int) String() string {
	return r.describe(r.Kind(), fmt.Sprintf("children: %d", len(r.Children)))
}

// Float matches a floating point literal, then tries Children as suffixes.
type Float struct {
	RuleParams
	Children []Rule
}

func (r *Float) Kind() Kind { return KindFloat }
func (r *Float) String() string {
	return r.describe(r.Kind(), fmt.Sprintf("children: %d", len(r.Children)))
}

// RangeDetect matches from Start to End on one line. Empty bounds never match.
type RangeDetect struct {
	RuleParams
	Start string
	End   string
}

func (r *RangeDetect) Kind() Kind { return KindRangeDetect }
func (r *RangeDetect) String() string {
	return r.describe(r.Kind(), fmt.Sprintf("start: %q, end: %q", r.Start, r.End))
}

// IncludeRules splices the rules of Target into the including context.
type IncludeRules struct {
	RuleParams
	// TargetName is the raw context attribute.
	TargetName string
	Target     *Context
}

func (r *IncludeRules) Kind() Kind { return KindIncludeRules }
func (r *IncludeRules) String() string {
	target := "<none>"
	if r.Target != nil {
		target = r.Target.Parser().Syntax().Name() + "/" + r.Target.Name()
	}
	return r.describe(r.Kind(), fmt.Sprintf("target: %s", target))
}

type HlCOct struct{ RuleParams }

func (r *HlCOct) Kind() Kind { return KindHlCOct }
func (r *HlCOct) String() string { return r.describe(r.Kind(), "") }

type HlCHex struct{ RuleParams }

func (r *HlCHex) Kind() Kind { return KindHlCHex }
func (r *HlCHex) String() string { return r.describe(r.Kind(), "") }

type HlCStringChar struct{ RuleParams }

func (r *HlCStringChar) Kind() Kind { return KindHlCStringChar }
func (r *HlCStringChar) String() string { return r.describe(r.Kind(), "") }

type HlCChar struct{ RuleParams }

func (r *HlCChar) Kind() Kind { return KindHlCChar }
func (r *HlCChar) String() string { return r.describe(r.Kind(), "") }

type LineContinue struct{ RuleParams }

func (r *LineContinue) Kind() Kind { return KindLineContinue }
func (r *LineContinue) String() string { return r.describe(r.Kind(), "") }

type DetectSpaces struct{ RuleParams }

func (r *DetectSpaces) Kind() Kind { return KindDetectSpaces }
func (r *DetectSpaces) String() string { return r.describe(r.Kind(), "") }

type DetectIdentifier struct{ RuleParams }

func (r *DetectIdentifier) Kind() Kind { return KindDetectIdentifier }
func (r *DetectIdentifier) String() string { return r.describe(r.Kind(), "") }
