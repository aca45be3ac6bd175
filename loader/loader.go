// Package loader provides sources for grammar documents: inline strings and
// bytes, io.Readers, files on disk, fs.FS trees and HTTP servers.
package loader

import (
	"io"
	"net/url"
)

// Loader returns a fresh reader over a grammar document on every call, and the
// URL identifying where the document came from.
type Loader interface {
	GetReader() (io.ReadCloser, error)
	GetSourceURL() *url.URL
}
