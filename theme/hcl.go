package theme

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// themeFile is the top level of an HCL theme document:
//
//	name    = "solarized"
//	palette = { red = "#dc322f" }
//
//	style "dsString" {
//	  color = palette.red
//	  bold  = false
//	}
type themeFile struct {
	Name    *string        `hcl:"name,optional"`
	Palette hcl.Expression `hcl:"palette,optional"`
	Styles  []*styleBlock  `hcl:"style,block"`
}

type styleBlock struct {
	ID   string   `hcl:"id,label"`
	Body hcl.Body `hcl:",remain"`
}

type styleAttrs struct {
	Color          *string `hcl:"color,optional"`
	SelectionColor *string `hcl:"selection_color,optional"`
	Italic         *bool   `hcl:"italic,optional"`
	Bold           *bool   `hcl:"bold,optional"`
	Underline      *bool   `hcl:"underline,optional"`
	StrikeOut      *bool   `hcl:"strikeout,optional"`
	SpellChecking  *bool   `hcl:"spellchecking,optional"`
}

// LoadHCL reads an HCL theme file and applies its styles on top of base.
// A nil base means Default().
func LoadHCL(path string, base *Theme) (*Theme, error) {
	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %w", ErrThemeLoad, path, diags)
	}
	return decodeTheme(file.Body, base)
}

// ParseHCL is LoadHCL for in-memory sources; filename is used in diagnostics only.
func ParseHCL(src []byte, filename string, base *Theme) (*Theme, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %w", ErrThemeLoad, filename, diags)
	}
	return decodeTheme(file.Body, base)
}

func decodeTheme(body hcl.Body, base *Theme) (*Theme, error) {
	if base == nil {
		base = Default()
	}

	var root themeFile
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrThemeLoad, diags)
	}

	evalCtx, err := paletteContext(root.Palette)
	if err != nil {
		return nil, err
	}

	out := base.copy()
	if root.Name != nil {
		out.name = *root.Name
	}

	for _, block := range root.Styles {
		id := StyleID(block.ID)
		if !id.Known() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, block.ID)
		}

		var attrs styleAttrs
		if diags := gohcl.DecodeBody(block.Body, evalCtx, &attrs); diags.HasErrors() {
			return nil, fmt.Errorf("%w: style %q: %w", ErrThemeLoad, block.ID, diags)
		}

		f := out.formats[id]
		attrs.applyTo(&f)
		out.formats[id] = f
	}
	return out, nil
}

// paletteContext exposes the palette object as the "palette" variable.
func paletteContext(expr hcl.Expression) (*hcl.EvalContext, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: palette: %w", ErrThemeLoad, diags)
	}
	if val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("%w: palette must be an object, got %s", ErrThemeLoad, ty.FriendlyName())
	}

	colors := make(map[string]cty.Value)
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		if !v.Type().Equals(cty.String) || v.IsNull() {
			return nil, fmt.Errorf("%w: palette entry %q must be a string", ErrThemeLoad, k.AsString())
		}
		colors[k.AsString()] = v
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"palette": cty.ObjectVal(colors),
		},
	}, nil
}

func (a styleAttrs) applyTo(f *TextFormat) {
	if a.Color != nil {
		f.Color = *a.Color
	}
	if a.SelectionColor != nil {
		f.SelectionColor = *a.SelectionColor
	}
	if a.Italic != nil {
		f.Italic = *a.Italic
	}
	if a.Bold != nil {
		f.Bold = *a.Bold
	}
	if a.Underline != nil {
		f.Underline = *a.Underline
	}
	if a.StrikeOut != nil {
		f.StrikeOut = *a.StrikeOut
	}
	if a.SpellChecking != nil {
		f.SpellChecking = *a.SpellChecking
	}
}
