package loader

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGrammar = `<language name="Sample" section="Other" extensions="*.smp">
  <highlighting><contexts><context name="Normal" attribute="Normal Text"/></contexts></highlighting>
</language>`

func readAll(t *testing.T, l Loader) string {
	t.Helper()
	r, err := l.GetReader()
	require.NoError(t, err)
	defer func() { require.NoError(t, r.Close()) }()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestFromString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
		want    string
	}{
		{name: "grammar", content: sampleGrammar, want: sampleGrammar},
		{name: "trimmed", content: "\n  " + sampleGrammar + "\t\n", want: sampleGrammar},
		{name: "empty", content: "", wantErr: ErrGrammarNotAvailable},
		{name: "whitespace", content: " \n\t", wantErr: ErrGrammarNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l, err := NewFromString(tt.content)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, l)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, readAll(t, l))
			// readers are independent
			assert.Equal(t, tt.want, readAll(t, l))
			assert.Equal(t, "string", l.GetSourceURL().Scheme)
			assert.Equal(t, "inline", l.GetSourceURL().Host)
			assert.Contains(t, l.String(), "loader.Inline{Source: string://inline/")
		})
	}
}

func TestFromBytes(t *testing.T) {
	t.Parallel()

	t.Run("copies input", func(t *testing.T) {
		t.Parallel()
		in := []byte(sampleGrammar)
		l, err := NewFromBytes(in)
		require.NoError(t, err)
		in[0] = 'X'
		assert.Equal(t, sampleGrammar, readAll(t, l))
		assert.Equal(t, "bytes", l.GetSourceURL().Scheme)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		_, err := NewFromBytes([]byte("  \n"))
		require.ErrorIs(t, err, ErrGrammarNotAvailable)
	})

	t.Run("same content same url", func(t *testing.T) {
		t.Parallel()
		a, err := NewFromBytes([]byte(sampleGrammar))
		require.NoError(t, err)
		b, err := NewFromBytes([]byte(sampleGrammar))
		require.NoError(t, err)
		assert.Equal(t, a.GetSourceURL().String(), b.GetSourceURL().String())
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestFromIoReader(t *testing.T) {
	t.Parallel()

	t.Run("named", func(t *testing.T) {
		t.Parallel()
		l, err := NewFromIoReader(strings.NewReader(sampleGrammar), "stdin")
		require.NoError(t, err)
		assert.Equal(t, sampleGrammar, readAll(t, l))
		assert.Equal(t, sampleGrammar, readAll(t, l))
		assert.Equal(t, "reader", l.GetSourceURL().Scheme)
		assert.Equal(t, "stdin", l.GetSourceURL().Host)
		assert.Contains(t, l.String(), "reader://stdin/")
	})

	t.Run("unnamed", func(t *testing.T) {
		t.Parallel()
		l, err := NewFromIoReader(strings.NewReader(sampleGrammar), "")
		require.NoError(t, err)
		assert.Equal(t, "unnamed", l.GetSourceURL().Host)
	})

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		_, err := NewFromIoReader(nil, "x")
		require.ErrorIs(t, err, ErrGrammarNotAvailable)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		_, err := NewFromIoReader(strings.NewReader(""), "x")
		require.ErrorIs(t, err, ErrGrammarNotAvailable)
	})

	t.Run("read error", func(t *testing.T) {
		t.Parallel()
		_, err := NewFromIoReader(failingReader{}, "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestFromDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "sample.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleGrammar), 0o600))

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "absolute", path: path},
		{name: "file scheme", path: "file://" + path},
		{name: "relative", path: "syntax/c.xml", wantErr: ErrGrammarNotAvailable},
		{name: "root", path: "/", wantErr: ErrGrammarNotAvailable},
		{name: "http", path: "http://example.com/c.xml", wantErr: ErrSchemeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l, err := NewFromDisk(tt.path)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, sampleGrammar, readAll(t, l))
			assert.Equal(t, "file", l.GetSourceURL().Scheme)
			assert.Equal(t, filepath.ToSlash(path), l.GetSourceURL().Path)
			assert.Contains(t, l.String(), "SHA256")
		})
	}

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		l, err := NewFromDisk(filepath.Join(dir, "missing.xml"))
		require.NoError(t, err)
		_, err = l.GetReader()
		require.ErrorIs(t, err, ErrGrammarNotAvailable)
		assert.NotContains(t, l.String(), "SHA256")
	})
}

func TestFromFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"syntax/sample.xml": &fstest.MapFile{Data: []byte(sampleGrammar)},
	}

	l, err := NewFromFS(fsys, "syntax/sample.xml")
	require.NoError(t, err)
	assert.Equal(t, sampleGrammar, readAll(t, l))
	assert.Equal(t, "fs:///syntax/sample.xml", l.GetSourceURL().String())
	assert.Equal(t, "loader.FromFS{Name: syntax/sample.xml}", l.String())

	missing, err := NewFromFS(fsys, "syntax/other.xml")
	require.NoError(t, err)
	_, err = missing.GetReader()
	require.ErrorIs(t, err, ErrGrammarNotAvailable)

	_, err = NewFromFS(nil, "a.xml")
	require.ErrorIs(t, err, ErrGrammarNotAvailable)
	_, err = NewFromFS(fsys, "")
	require.ErrorIs(t, err, ErrInputEmpty)
	_, err = NewFromFS(fsys, "../escape.xml")
	require.ErrorIs(t, err, ErrGrammarNotAvailable)
}

func TestInferLoader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "sample.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleGrammar), 0o600))

	existing, err := NewFromString(sampleGrammar)
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    any
		wantType any
		wantErr  error
	}{
		{name: "loader", input: existing, wantType: &Inline{}},
		{name: "inline xml", input: sampleGrammar, wantType: &Inline{}},
		{name: "bytes", input: []byte(sampleGrammar), wantType: &Inline{}},
		{name: "reader", input: strings.NewReader(sampleGrammar), wantType: &Inline{}},
		{name: "path", input: path, wantType: &FromDisk{}},
		{name: "file url", input: "file://" + path, wantType: &FromDisk{}},
		{name: "relative path", input: "sample.xml", wantType: &FromDisk{}},
		{name: "http", input: "https://example.com/c.xml", wantType: &FromHTTP{}},
		{name: "nil", input: nil, wantErr: ErrInputEmpty},
		{name: "empty string", input: "  ", wantErr: ErrInputEmpty},
		{name: "unsupported", input: 42, wantErr: ErrGrammarNotAvailable},
		{name: "blank bytes", input: []byte(" \n"), wantErr: ErrGrammarNotAvailable},
		{name: "relative file url", input: "file://grammar.xml", wantErr: ErrGrammarNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l, err := InferLoader(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.True(t, l == nil, "failed inference must return a nil interface")
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, l)
		})
	}
}

func TestMockLoader(t *testing.T) {
	t.Parallel()

	m := NewMockLoaderWithContent([]byte(sampleGrammar))
	assert.Equal(t, sampleGrammar, readAll(t, m))
	assert.Equal(t, sampleGrammar, readAll(t, m), "each call yields a fresh reader")
	assert.Equal(t, "mock://grammar", m.GetSourceURL().String())
	m.AssertExpectations(t)

	failing := new(MockLoader)
	failing.On("GetReader").Return(nil, ErrGrammarNotAvailable)
	failing.On("GetSourceURL").Return(nil)
	_, err := failing.GetReader()
	require.ErrorIs(t, err, ErrGrammarNotAvailable)
	assert.Nil(t, failing.GetSourceURL())
	failing.AssertExpectations(t)
}
