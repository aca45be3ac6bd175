package theme

import "slices"

// Theme maps every known style id to its base TextFormat. A Theme is read-only;
// With returns a modified copy.
type Theme struct {
	name    string
	formats map[StyleID]TextFormat
}

// Default returns a new copy of the built-in theme.
func Default() *Theme {
	return &Theme{
		name: "default",
		formats: map[StyleID]TextFormat{
			StyleNormal:       {},
			StyleKeyword:      {Bold: true},
			StyleDataType:     {Color: "#0057ae"},
			StyleDecVal:       {Color: "#b07e00"},
			StyleBaseN:        {Color: "#b07e00"},
			StyleFloat:        {Color: "#b07e00"},
			StyleChar:         {Color: "#ff80e0"},
			StyleString:       {Color: "#bf0303"},
			StyleComment:      {Color: "#888786", Italic: true},
			StyleOthers:       {Color: "#006e26"},
			StyleAlert:        {Color: "#bf0303", Bold: true},
			StyleFunction:     {Color: "#644a9a"},
			StyleRegionMarker: {Color: "#0000ff"},
			StyleError:        {Color: "#bf0303", Underline: true},
			StyleCustomDebug:  {Color: "#ffffff", SelectionColor: "#000000"},
		},
	}
}

// Name returns the theme name.
func (t *Theme) Name() string {
	return t.name
}

// Format returns the base format of a style.
func (t *Theme) Format(id StyleID) (TextFormat, bool) {
	f, ok := t.formats[id]
	return f, ok
}

// Styles returns the style ids present in the theme, sorted.
func (t *Theme) Styles() []StyleID {
	ids := make([]StyleID, 0, len(t.formats))
	for id := range t.formats {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// With returns a copy of the theme where id maps to f.
func (t *Theme) With(id StyleID, f TextFormat) *Theme {
	out := t.copy()
	out.formats[id] = f
	return out
}

// Named returns a copy of the theme with another name.
func (t *Theme) Named(name string) *Theme {
	out := t.copy()
	out.name = name
	return out
}

func (t *Theme) copy() *Theme {
	formats := make(map[StyleID]TextFormat, len(t.formats))
	for id, f := range t.formats {
		formats[id] = f
	}
	return &Theme{name: t.name, formats: formats}
}
