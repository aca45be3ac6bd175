package compiler

import (
	"strings"

	"github.com/robbyt/go-hlsyntax/compiler/internal/xmldoc"
	"github.com/robbyt/go-hlsyntax/grammar"
	"github.com/robbyt/go-hlsyntax/theme"
)

// loadFormats builds the attribute table from itemDatas/itemData. Keys are
// lowercased attribute names.
func (b *build) loadFormats(hl *xmldoc.Element) map[string]theme.TextFormat {
	formats := make(map[string]theme.TextFormat)
	itemDatas := hl.Child("itemDatas")
	if itemDatas == nil {
		return formats
	}

	for _, item := range itemDatas.ChildrenNamed("itemData") {
		name, ok := b.required(item, "name", "")
		if !ok {
			continue
		}

		styleName := item.AttrOr("defStyleNum", "")
		style := theme.StyleID(styleName)
		base, known := b.c.theme.Format(style)
		if !known {
			b.warn(item, grammar.DiagUnknownStyle, "unknown default style %q, using %s", styleName, theme.StyleNormal)
			base, _ = b.c.theme.Format(theme.StyleNormal)
		}

		formats[strings.ToLower(name)] = b.applyOverrides(item, base)
	}
	return formats
}

func (b *build) applyOverrides(item *xmldoc.Element, f theme.TextFormat) theme.TextFormat {
	for _, a := range item.Attrs() {
		switch strings.ToLower(a.Name) {
		case "color":
			f.Color = a.Value
		case "selcolor":
			f.SelectionColor = a.Value
		case "italic":
			f.Italic = b.lenientValue(item, a.Name, a.Value, f.Italic)
		case "bold":
			f.Bold = b.lenientValue(item, a.Name, a.Value, f.Bold)
		case "underline":
			f.Underline = b.lenientValue(item, a.Name, a.Value, f.Underline)
		case "strikeout":
			f.StrikeOut = b.lenientValue(item, a.Name, a.Value, f.StrikeOut)
		case "spellchecking":
			f.SpellChecking = b.lenientValue(item, a.Name, a.Value, f.SpellChecking)
		}
	}
	return f
}

// format returns the converted format of an attribute. The converter runs at
// most once per attribute and the result is shared by every user.
func (b *build) format(attribute string) (*theme.TextFormat, bool) {
	key := strings.ToLower(attribute)
	if f, ok := b.converted[key]; ok {
		return f, true
	}
	base, ok := b.formats[key]
	if !ok {
		return nil, false
	}
	f := b.c.converter.Apply(base).Clone()
	b.converted[key] = f
	return f, true
}
