// Package xmldoc builds the small element tree the grammar compiler walks.
// It keeps attribute order, direct text, line numbers and the internal DTD
// entities Kate grammars declare in their DOCTYPE.
package xmldoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
	"unicode"
)

var (
	ErrNoRoot        = errors.New("document has no root element")
	ErrTrailingData  = errors.New("unexpected content after root element")
	ErrUnexpectedEnd = errors.New("unexpected end of document")
)

var entityDecl = regexp.MustCompile(`<!ENTITY\s+([^\s%"']+)\s+(?:"([^"]*)"|'([^']*)')\s*>`)

// Attr is one attribute in document order.
type Attr struct {
	Name  string
	Value string
}

// Element is a node of the tree. Namespaces are dropped.
type Element struct {
	Name     string
	Line     int
	attrs    []Attr
	children []*Element
	text     strings.Builder
}

// Parse reads a whole document and returns its root element.
func Parse(r io.Reader) (*Element, error) {
	decoder := xml.NewDecoder(r)
	decoder.Entity = make(map[string]string)

	var stack []*Element
	var root *Element
	rootClosed := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.Directive:
			collectEntities(string(t), decoder.Entity)

		case xml.StartElement:
			if rootClosed {
				return nil, fmt.Errorf("%w: element <%s>", ErrTrailingData, t.Name.Local)
			}
			line, _ := decoder.InputPos()
			elem := &Element{Name: t.Name.Local, Line: line, attrs: convertAttrs(t.Attr)}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, elem)
			} else {
				root = elem
			}
			stack = append(stack, elem)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					rootClosed = true
				}
			}

		case xml.CharData:
			if len(stack) == 0 {
				if !isBlank(string(t)) {
					return nil, fmt.Errorf("%w: character data", ErrTrailingData)
				}
				continue
			}
			stack[len(stack)-1].text.Write(t)
		}
	}

	if root == nil {
		return nil, ErrNoRoot
	}
	if !rootClosed {
		return nil, ErrUnexpectedEnd
	}
	return root, nil
}

// ParseRoot reads up to the root start tag and returns the root element
// without children or text.
func ParseRoot(r io.Reader) (*Element, error) {
	decoder := xml.NewDecoder(r)
	decoder.Entity = make(map[string]string)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return nil, ErrNoRoot
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.Directive:
			collectEntities(string(t), decoder.Entity)
		case xml.StartElement:
			line, _ := decoder.InputPos()
			return &Element{Name: t.Name.Local, Line: line, attrs: convertAttrs(t.Attr)}, nil
		case xml.CharData:
			if !isBlank(string(t)) {
				return nil, fmt.Errorf("%w: character data", ErrTrailingData)
			}
		}
	}
}

func collectEntities(directive string, entities map[string]string) {
	for _, m := range entityDecl.FindAllStringSubmatch(directive, -1) {
		value := m[2]
		if value == "" {
			value = m[3]
		}
		entities[m[1]] = html.UnescapeString(value)
	}
}

func convertAttrs(in []xml.Attr) []Attr {
	out := make([]Attr, 0, len(in))
	for _, a := range in {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		out = append(out, Attr{Name: a.Name.Local, Value: a.Value})
	}
	return out
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != '\uFEFF' && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Attr returns the value of the attribute with exactly this name.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the attribute value, or def when absent.
func (e *Element) AttrOr(name, def string) string {
	if v, ok := e.Attr(name); ok {
		return v
	}
	return def
}

// Attrs returns a copy of the attributes in document order.
func (e *Element) Attrs() []Attr {
	return append([]Attr(nil), e.attrs...)
}

// Child returns the first direct child named name, or nil.
func (e *Element) Child(name string) *Element {
	for _, c := range e.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns the direct children named name.
func (e *Element) ChildrenNamed(name string) []*Element {
	var out []*Element
	for _, c := range e.children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Children returns every direct child element.
func (e *Element) Children() []*Element {
	return append([]*Element(nil), e.children...)
}

// Text returns the character data directly inside the element.
func (e *Element) Text() string {
	return e.text.String()
}
