package hlsyntax_test

import (
	"bytes"
	"io/fs"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/robbyt/go-hlsyntax"
	risorconv "github.com/robbyt/go-hlsyntax/converter/risor"
	starlarkconv "github.com/robbyt/go-hlsyntax/converter/starlark"
	"github.com/robbyt/go-hlsyntax/grammar"
	"github.com/robbyt/go-hlsyntax/options"
	"github.com/robbyt/go-hlsyntax/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadmeQuickStart(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	syn, err := hlsyntax.FromString(iniGrammar, options.WithLogger(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, err, "Should compile successfully")
	require.Empty(t, syn.Diagnostics())

	start := syn.Parser().DefaultContext()
	require.Len(t, start.Rules(), 3)
	assert.Equal(t, grammar.KindDetectChar, start.Rules()[0].Kind())
	assert.Equal(t, grammar.KindKeyword, start.Rules()[2].Kind())
	assert.Empty(t, logs.String(), "A clean grammar logs nothing")
}

func TestReadmeDiagnostics(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	doc := `<language name="Loose" section="Other" extensions="*.l">
  <highlighting>
    <contexts>
      <context name="A" attribute="Missing" lineEndContext="#pop#stay"/>
    </contexts>
  </highlighting>
</language>`

	syn, err := hlsyntax.FromString(doc, options.WithLogger(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, err, "Problems with a default are not fatal")
	require.NotEmpty(t, syn.Diagnostics())
	assert.Contains(t, logs.String(), "level=WARN")
}

func TestReadmeManager(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"ini.xml":        {Data: []byte(iniGrammar)},
		"properties.xml": {Data: []byte(propsGrammar)},
	}
	catalog, err := hlsyntax.NewCatalogFS([]fs.FS{fsys}, quiet())
	require.NoError(t, err)
	manager, err := hlsyntax.NewManager(catalog, quiet())
	require.NoError(t, err)

	syn, err := manager.SyntaxForFile("settings.ini")
	require.NoError(t, err)
	assert.Equal(t, "INI Files", syn.Name())
}

func TestReadmeThemeAndConverters(t *testing.T) {
	t.Parallel()

	night, err := theme.ParseHCL([]byte(`
name    = "night"
palette = { green = "#00aa00" }

style "dsComment" {
  color  = palette.green
  italic = true
}
`), "night.hcl", theme.Default())
	require.NoError(t, err)

	star, err := starlarkconv.New([]byte(`
def convert(format):
    if format["italic"]:
        format["color"] = format["color"].upper()
    return format
`), starlarkconv.WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, err)

	ris, err := risorconv.New(`
f := format
f["underline"] = f["italic"]
f
`, risorconv.WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, err)

	syn, err := hlsyntax.FromString(iniGrammar,
		quiet(),
		options.WithTheme(night),
		options.WithFormatConverter(star.Func(t.Context())),
		options.WithFormatConverter(ris.Func(t.Context())),
	)
	require.NoError(t, err)

	comment, ok := syn.Parser().Context("Comment")
	require.True(t, ok)
	require.NotNil(t, comment.Format())
	assert.Equal(t, theme.TextFormat{Color: "#00AA00", Italic: true, Underline: true}, *comment.Format())
}
