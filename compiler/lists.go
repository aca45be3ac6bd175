package compiler

import (
	"strings"

	"github.com/robbyt/go-hlsyntax/compiler/internal/xmldoc"
)

const unnamedList = "<unnamed>"

func (b *build) loadLists(hl *xmldoc.Element) map[string][]string {
	lists := make(map[string][]string)
	for _, el := range hl.ChildrenNamed("list") {
		var words []string
		for _, item := range el.ChildrenNamed("item") {
			word := strings.TrimSpace(item.Text())
			if word == "" {
				continue
			}
			words = append(words, word)
		}
		name, _ := b.required(el, "name", unnamedList)
		lists[name] = words
	}
	return lists
}

func lowercaseLists(lists map[string][]string) {
	for _, words := range lists {
		for i, w := range words {
			words[i] = strings.ToLower(w)
		}
	}
}
