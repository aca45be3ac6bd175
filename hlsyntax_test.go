package hlsyntax_test

import (
	"bytes"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/robbyt/go-hlsyntax"
	"github.com/robbyt/go-hlsyntax/compiler"
	"github.com/robbyt/go-hlsyntax/grammar"
	"github.com/robbyt/go-hlsyntax/loader"
	"github.com/robbyt/go-hlsyntax/options"
	"github.com/robbyt/go-hlsyntax/provider"
	"github.com/robbyt/go-hlsyntax/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const iniGrammar = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE language SYSTEM "language.dtd">
<language name="INI Files" section="Configuration" extensions="*.ini;*.cfg" mimetype="text/x-ini" version="1" kateversion="5.0">
  <highlighting>
    <list name="values">
      <item>true</item>
      <item>false</item>
    </list>
    <contexts>
      <context name="ini" attribute="Normal Text" lineEndContext="#stay">
        <DetectChar char="[" attribute="Section" context="Section"/>
        <DetectChar char=";" attribute="Comment" context="Comment"/>
        <keyword String="values" attribute="Value"/>
      </context>
      <context name="Section" attribute="Section" lineEndContext="#pop">
        <DetectChar char="]" attribute="Section" context="#pop"/>
      </context>
      <context name="Comment" attribute="Comment" lineEndContext="#pop"/>
    </contexts>
    <itemDatas>
      <itemData name="Normal Text" defStyleNum="dsNormal"/>
      <itemData name="Section" defStyleNum="dsKeyword"/>
      <itemData name="Value" defStyleNum="dsDecVal"/>
      <itemData name="Comment" defStyleNum="dsComment"/>
    </itemDatas>
  </highlighting>
</language>
`

const propsGrammar = `<language name="Properties" section="Configuration" extensions="*.properties">
  <highlighting>
    <contexts>
      <context name="props" attribute="Normal Text" lineEndContext="#stay">
        <IncludeRules context="##INI Files"/>
      </context>
    </contexts>
    <itemDatas>
      <itemData name="Normal Text" defStyleNum="dsNormal"/>
    </itemDatas>
  </highlighting>
</language>
`

func quiet() options.Option {
	return options.WithLogger(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func checkINI(t *testing.T, syn *grammar.Syntax) {
	t.Helper()
	require.NotNil(t, syn)
	assert.Equal(t, "INI Files", syn.Name())
	assert.True(t, syn.Sealed())
	assert.Empty(t, syn.Diagnostics())

	p := syn.Parser()
	require.NotNil(t, p)
	assert.Equal(t, "ini", p.DefaultContext().Name())
	assert.Len(t, p.Contexts(), 3)
	values, ok := p.List("values")
	require.True(t, ok)
	assert.Equal(t, []string{"true", "false"}, values)
}

func TestFromString(t *testing.T) {
	t.Parallel()

	syn, err := hlsyntax.FromString(iniGrammar, quiet())
	require.NoError(t, err)
	checkINI(t, syn)
	assert.Equal(t, "string", syn.SourceURL().Scheme)

	_, err = hlsyntax.FromString("", quiet())
	require.ErrorIs(t, err, loader.ErrGrammarNotAvailable)
}

func TestFromBytes(t *testing.T) {
	t.Parallel()

	syn, err := hlsyntax.FromBytes([]byte(iniGrammar), quiet())
	require.NoError(t, err)
	checkINI(t, syn)
}

func TestFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ini.xml")
	require.NoError(t, os.WriteFile(path, []byte(iniGrammar), 0o600))

	syn, err := hlsyntax.FromFile(path, quiet())
	require.NoError(t, err)
	checkINI(t, syn)
	assert.Equal(t, "file", syn.SourceURL().Scheme)

	_, err = hlsyntax.FromFile(filepath.Join(t.TempDir(), "missing.xml"), quiet())
	require.ErrorIs(t, err, loader.ErrGrammarNotAvailable)
}

func TestFromHTTP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(iniGrammar))
	}))
	t.Cleanup(srv.Close)

	syn, err := hlsyntax.FromHTTP(srv.URL+"/ini.xml", quiet())
	require.NoError(t, err)
	checkINI(t, syn)

	_, err = hlsyntax.FromHTTP("ftp://example.com/ini.xml", quiet())
	require.ErrorIs(t, err, loader.ErrSchemeUnsupported)
}

func TestCompileOptions(t *testing.T) {
	t.Parallel()

	dark := theme.Default().With(theme.StyleKeyword, theme.TextFormat{Color: "#00ffff", Bold: true})
	l, err := loader.NewFromString(iniGrammar)
	require.NoError(t, err)

	syn, err := hlsyntax.Compile(
		quiet(),
		options.WithLoader(l),
		options.WithTheme(dark),
		options.WithFormatConverter(func(f theme.TextFormat) theme.TextFormat {
			f.Underline = true
			return f
		}),
	)
	require.NoError(t, err)

	section, ok := syn.Parser().Context("Section")
	require.True(t, ok)
	require.NotNil(t, section.Format())
	assert.Equal(t, theme.TextFormat{Color: "#00ffff", Bold: true, Underline: true}, *section.Format())

	_, err = hlsyntax.Compile(quiet())
	require.Error(t, err, "loader is required")
}

func TestManager(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"ini.xml":        {Data: []byte(iniGrammar)},
		"properties.xml": {Data: []byte(propsGrammar)},
		"README":         {Data: []byte("not indexed")},
	}

	catalog, err := hlsyntax.NewCatalogFS([]fs.FS{fsys}, quiet())
	require.NoError(t, err)
	assert.Equal(t, []string{"INI Files", "Properties"}, catalog.Names())

	m, err := hlsyntax.NewManager(catalog, quiet())
	require.NoError(t, err)

	props, err := m.SyntaxForFile("app.properties")
	require.NoError(t, err)
	assert.Equal(t, []string{"INI Files", "Properties"}, m.Compiled())

	ini, err := m.SyntaxForMimeType("text/x-ini")
	require.NoError(t, err)
	checkINI(t, ini)

	rules := props.Parser().DefaultContext().Rules()
	require.Len(t, rules, 1)
	inc, ok := rules[0].(*grammar.IncludeRules)
	require.True(t, ok)
	assert.Same(t, ini.Parser().DefaultContext(), inc.Target)
}

func TestNewCatalogDirs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ini.xml"), []byte(iniGrammar), 0o600))

	catalog, err := hlsyntax.NewCatalog([]string{dir}, quiet())
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.Len())

	_, err = hlsyntax.NewCatalog([]string{filepath.Join(dir, "nope")}, quiet())
	require.ErrorIs(t, err, loader.ErrGrammarNotAvailable)

	_, err = hlsyntax.NewCatalog([]string{filepath.Join(dir, "ini.xml")}, quiet())
	require.ErrorIs(t, err, loader.ErrGrammarNotAvailable)

	_, err = hlsyntax.NewManager(nil, quiet())
	require.ErrorIs(t, err, provider.ErrCatalogNil)
}

func TestBooleanStrictness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		context  string
		rule     string
		wantErr  bool
		wantDiag grammar.DiagnosticCode
	}{
		{
			name:     "context fallthrough is lenient",
			context:  `fallthrough="sometimes" fallthroughContext="Other"`,
			rule:     `<DetectChar char="x"/>`,
			wantDiag: grammar.DiagInvalidBool,
		},
		{
			name:     "context dynamic is lenient",
			context:  `dynamic="maybe"`,
			rule:     `<DetectChar char="x"/>`,
			wantDiag: grammar.DiagInvalidBool,
		},
		{
			name:    "rule lookAhead is strict",
			rule:    `<DetectChar char="x" lookAhead="sometimes"/>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := `<language name="Bools" section="Test" extensions="*.bool">
  <highlighting>
    <contexts>
      <context name="Main" ` + tt.context + `>` + tt.rule + `</context>
      <context name="Other"/>
    </contexts>
  </highlighting>
</language>`

			syn, err := hlsyntax.FromString(doc, quiet())
			if tt.wantErr {
				require.ErrorIs(t, err, compiler.ErrInvalidBool)
				assert.Nil(t, syn)
				return
			}
			require.NoError(t, err)
			start := syn.Parser().DefaultContext()
			assert.Nil(t, start.Fallthrough(), "malformed flag falls back to false")
			assert.False(t, start.Dynamic())
			require.Len(t, syn.Diagnostics(), 1)
			assert.Equal(t, tt.wantDiag, syn.Diagnostics()[0].Code)
		})
	}
}
