package loader

import (
	"bytes"
	"fmt"
	"io"
	"net/url"

	"github.com/robbyt/go-hlsyntax/internal/helpers"
)

// Inline is a grammar document held in memory. Its source URL is
// <scheme>://<host>/<short digest>, so two loaders over the same text report
// the same source.
type Inline struct {
	content   []byte
	sourceURL *url.URL
}

func newInline(scheme, host string, content []byte) (*Inline, error) {
	content = bytes.TrimSpace(content)
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: %s content is blank", ErrGrammarNotAvailable, scheme)
	}
	return &Inline{
		content: content,
		sourceURL: &url.URL{
			Scheme: scheme,
			Host:   host,
			Path:   "/" + helpers.ShortDigest(content),
		},
	}, nil
}

// NewFromString holds a grammar given as text.
func NewFromString(content string) (*Inline, error) {
	return newInline("string", "inline", []byte(content))
}

// NewFromBytes holds a copy of content.
func NewFromBytes(content []byte) (*Inline, error) {
	return newInline("bytes", "inline", bytes.Clone(content))
}

// NewFromIoReader drains reader once. sourceName becomes the URL host and
// defaults to "unnamed".
func NewFromIoReader(reader io.Reader, sourceName string) (*Inline, error) {
	if reader == nil {
		return nil, fmt.Errorf("%w: reader is nil", ErrGrammarNotAvailable)
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read from reader: %w", err)
	}
	if sourceName == "" {
		sourceName = "unnamed"
	}
	return newInline("reader", sourceName, content)
}

func (l *Inline) String() string {
	return fmt.Sprintf("loader.Inline{Source: %s, Bytes: %d}", l.sourceURL, len(l.content))
}

// GetReader returns an independent reader over the held document.
func (l *Inline) GetReader() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(l.content)), nil
}

func (l *Inline) GetSourceURL() *url.URL {
	return l.sourceURL
}
