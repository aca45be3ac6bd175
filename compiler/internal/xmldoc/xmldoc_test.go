package xmldoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE language SYSTEM "language.dtd"
[
  <!ENTITY ident "[a-zA-Z_][a-zA-Z0-9_]*">
  <!ENTITY amp2 'a&amp;b'>
]>
<language name="Test" Section="Sources">
  <highlighting>
    <list name="kw">
      <item> if </item>
      <item/>
    </list>
    <contexts>
      <context name="Normal">
        <RegExpr String="&ident;"/>
        <StringDetect String="&amp2;"/>
      </context>
    </contexts>
  </highlighting>
</language>
`

func TestParse(t *testing.T) {
	t.Parallel()

	root, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, "language", root.Name)
	require.Equal(t, 7, root.Line)

	name, ok := root.Attr("name")
	require.True(t, ok)
	assert.Equal(t, "Test", name)

	_, ok = root.Attr("section")
	assert.False(t, ok, "attribute names are case-sensitive")
	assert.Equal(t, "fallback", root.AttrOr("missing", "fallback"))

	hl := root.Child("highlighting")
	require.NotNil(t, hl)
	assert.Nil(t, root.Child("general"))

	items := hl.Child("list").ChildrenNamed("item")
	require.Len(t, items, 2)
	assert.Equal(t, " if ", items[0].Text())
	assert.Equal(t, "", items[1].Text())

	rules := hl.Child("contexts").Child("context").Children()
	require.Len(t, rules, 2)
	assert.Equal(t, "RegExpr", rules[0].Name)
	pattern, _ := rules[0].Attr("String")
	assert.Equal(t, "[a-zA-Z_][a-zA-Z0-9_]*", pattern)
	literal, _ := rules[1].Attr("String")
	assert.Equal(t, "a&b", literal)
	assert.Equal(t, 15, rules[0].Line)

	attrs := root.Attrs()
	require.Len(t, attrs, 2)
	assert.Equal(t, Attr{Name: "name", Value: "Test"}, attrs[0])
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "empty", input: "", wantErr: ErrNoRoot},
		{name: "only prolog", input: `<?xml version="1.0"?>`, wantErr: ErrNoRoot},
		{name: "second root", input: "<a/><b/>", wantErr: ErrTrailingData},
		{name: "text after root", input: "<a/>text", wantErr: ErrTrailingData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(strings.NewReader(tt.input))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("syntax error", func(t *testing.T) {
		t.Parallel()
		_, err := Parse(strings.NewReader("<a><b></a>"))
		require.Error(t, err)
	})

	t.Run("undeclared entity", func(t *testing.T) {
		t.Parallel()
		_, err := Parse(strings.NewReader(`<a x="&nope;"/>`))
		require.Error(t, err)
	})
}

func TestParseRoot(t *testing.T) {
	t.Parallel()

	root, err := ParseRoot(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "language", root.Name)
	assert.Empty(t, root.Children())
	assert.Equal(t, "Test", root.AttrOr("name", ""))

	_, err = ParseRoot(strings.NewReader("  "))
	require.ErrorIs(t, err, ErrNoRoot)

	_, err = ParseRoot(strings.NewReader("junk <a/>"))
	require.ErrorIs(t, err, ErrTrailingData)
}
