package theme

import (
	"fmt"
	"strings"
)

// TextFormat is the visual style attached to an attribute, a context or a rule.
// Empty colors mean "not set" and leave the decision to the renderer.
type TextFormat struct {
	Color          string
	SelectionColor string
	Italic         bool
	Bold           bool
	Underline      bool
	StrikeOut      bool
	SpellChecking  bool
}

// Clone returns a heap copy of the format.
func (f TextFormat) Clone() *TextFormat {
	return &f
}

// AsMap returns the format as a flat map, used by the scripted converters.
func (f TextFormat) AsMap() map[string]any {
	return map[string]any{
		"color":          f.Color,
		"selectionColor": f.SelectionColor,
		"italic":         f.Italic,
		"bold":           f.Bold,
		"underline":      f.Underline,
		"strikeOut":      f.StrikeOut,
		"spellChecking":  f.SpellChecking,
	}
}

// FormatFromMap builds a TextFormat from the keys of AsMap, starting from base.
// Keys are matched case-insensitively; unknown keys are ignored.
func FormatFromMap(base TextFormat, m map[string]any) (TextFormat, error) {
	out := base
	for key, value := range m {
		switch strings.ToLower(key) {
		case "color":
			s, err := asString(key, value)
			if err != nil {
				return base, err
			}
			out.Color = s
		case "selectioncolor":
			s, err := asString(key, value)
			if err != nil {
				return base, err
			}
			out.SelectionColor = s
		case "italic":
			if err := setBool(&out.Italic, key, value); err != nil {
				return base, err
			}
		case "bold":
			if err := setBool(&out.Bold, key, value); err != nil {
				return base, err
			}
		case "underline":
			if err := setBool(&out.Underline, key, value); err != nil {
				return base, err
			}
		case "strikeout":
			if err := setBool(&out.StrikeOut, key, value); err != nil {
				return base, err
			}
		case "spellchecking":
			if err := setBool(&out.SpellChecking, key, value); err != nil {
				return base, err
			}
		}
	}
	return out, nil
}

func asString(key string, value any) (string, error) {
	if value == nil {
		return "", nil
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidFormat, key, value)
	}
	return s, nil
}

func setBool(dst *bool, key string, value any) error {
	b, ok := value.(bool)
	if !ok {
		return fmt.Errorf("%w: %s must be a bool, got %T", ErrInvalidFormat, key, value)
	}
	*dst = b
	return nil
}

func (f TextFormat) String() string {
	var flags []string
	if f.Bold {
		flags = append(flags, "bold")
	}
	if f.Italic {
		flags = append(flags, "italic")
	}
	if f.Underline {
		flags = append(flags, "underline")
	}
	if f.StrikeOut {
		flags = append(flags, "strikeout")
	}
	if f.SpellChecking {
		flags = append(flags, "spellcheck")
	}
	return fmt.Sprintf("TextFormat{color: %q, selection: %q, flags: [%s]}",
		f.Color, f.SelectionColor, strings.Join(flags, " "))
}
