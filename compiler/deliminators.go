package compiler

import (
	"github.com/robbyt/go-hlsyntax/compiler/internal/xmldoc"
	"github.com/robbyt/go-hlsyntax/grammar"
)

// loadKeywordSettings reads general/keywords. Lists are lowercased in place when
// the grammar is case-insensitive, before any rule consumes them.
func (b *build) loadKeywordSettings(general *xmldoc.Element, lists map[string][]string) (bool, grammar.DeliminatorSet) {
	delims := grammar.DefaultDeliminatorSet()
	if general == nil {
		return true, delims
	}
	keywords := general.Child("keywords")
	if keywords == nil {
		return true, delims
	}

	caseSensitive := b.lenientBool(keywords, "casesensitive", true)
	if !caseSensitive {
		lowercaseLists(lists)
	}
	return caseSensitive, buildDeliminators(delims, keywords)
}

func buildDeliminators(base grammar.DeliminatorSet, keywords *xmldoc.Element) grammar.DeliminatorSet {
	if weak, ok := keywords.Attr("weakDeliminator"); ok {
		base = base.Without(weak)
	}
	if additional, ok := keywords.Attr("additionalDeliminator"); ok {
		base = base.With(additional)
	}
	return base
}
