package compiler

import (
	"fmt"
	"strings"

	"github.com/robbyt/go-hlsyntax/compiler/internal/xmldoc"
	"github.com/robbyt/go-hlsyntax/grammar"
)

// parseBool accepts true/1/false/0 in any case.
func parseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", ErrInvalidBool, value)
}

// strictBool reads a rule parameter; a malformed value aborts the compile.
func strictBool(el *xmldoc.Element, name string, def bool) (bool, error) {
	v, ok := el.Attr(name)
	if !ok {
		return def, nil
	}
	b, err := parseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: attribute %q of <%s> at line %d", err, name, el.Name, el.Line)
	}
	return b, nil
}

// lenientBool reads a document-level flag; a malformed value is a diagnostic.
func (b *build) lenientBool(el *xmldoc.Element, name string, def bool) bool {
	v, ok := el.Attr(name)
	if !ok {
		return def
	}
	return b.lenientValue(el, name, v, def)
}

func (b *build) lenientValue(el *xmldoc.Element, name, value string, def bool) bool {
	parsed, err := parseBool(value)
	if err != nil {
		b.warn(el, grammar.DiagInvalidBool, "invalid boolean %q for %q, using %t", value, name, def)
		return def
	}
	return parsed
}
