package compiler

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/robbyt/go-hlsyntax/grammar"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockProvider implements Provider for testing
type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) SyntaxByName(name string) (*grammar.Syntax, error) {
	args := m.Called(name)
	syn, _ := args.Get(0).(*grammar.Syntax)
	return syn, args.Error(1)
}

// mockReadCloser records Close calls
type mockReadCloser struct {
	io.Reader
	mock.Mock
}

func (m *mockReadCloser) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newTestCompiler(t *testing.T, opts ...FunctionalOption) (*Compiler, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	c, err := New(append([]FunctionalOption{WithLogHandler(handler)}, opts...)...)
	require.NoError(t, err)
	return c, &buf
}

func compileString(t *testing.T, doc string, opts ...FunctionalOption) (*grammar.Syntax, error) {
	t.Helper()
	c, _ := newTestCompiler(t, opts...)
	return c.Compile(io.NopCloser(strings.NewReader(doc)), nil)
}

func mustCompile(t *testing.T, doc string, opts ...FunctionalOption) *grammar.Syntax {
	t.Helper()
	syn, err := compileString(t, doc, opts...)
	require.NoError(t, err)
	require.NotNil(t, syn)
	return syn
}

// grammarDoc wraps context elements in a minimal document.
func grammarDoc(contexts string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<language name="Test" section="Other" extensions="*.test">
  <highlighting>
    <list name="keywords">
      <item>if</item>
      <item>else</item>
    </list>
    <contexts>` + contexts + `
    </contexts>
    <itemDatas>
      <itemData name="Normal Text" defStyleNum="dsNormal"/>
      <itemData name="Keyword" defStyleNum="dsKeyword"/>
      <itemData name="String" defStyleNum="dsString"/>
    </itemDatas>
  </highlighting>
</language>
`
}

func diagCodes(syn *grammar.Syntax) []grammar.DiagnosticCode {
	var codes []grammar.DiagnosticCode
	for _, d := range syn.Diagnostics() {
		codes = append(codes, d.Code)
	}
	return codes
}

func onlyRule(t *testing.T, syn *grammar.Syntax) grammar.Rule {
	t.Helper()
	rules := syn.Parser().DefaultContext().Rules()
	require.Len(t, rules, 1)
	return rules[0]
}
