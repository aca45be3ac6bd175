package loader

import (
	"fmt"
	"io"
	"io/fs"
	"net/url"
)

// FromFS loads a grammar from an fs.FS, such as an embed.FS of bundled
// definitions or an os.DirFS over a grammar directory.
type FromFS struct {
	fsys      fs.FS
	name      string
	sourceURL *url.URL
}

// NewFromFS creates a loader for name inside fsys. The name must be a valid
// fs.FS path.
func NewFromFS(fsys fs.FS, name string) (*FromFS, error) {
	if fsys == nil {
		return nil, fmt.Errorf("%w: file system is nil", ErrGrammarNotAvailable)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is empty", ErrInputEmpty)
	}
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: invalid path %q", ErrGrammarNotAvailable, name)
	}

	return &FromFS{
		fsys:      fsys,
		name:      name,
		sourceURL: &url.URL{Scheme: "fs", Path: "/" + name},
	}, nil
}

func (l *FromFS) String() string {
	return fmt.Sprintf("loader.FromFS{Name: %s}", l.name)
}

// GetReader opens the file inside the file system.
func (l *FromFS) GetReader() (io.ReadCloser, error) {
	f, err := l.fsys.Open(l.name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGrammarNotAvailable, err)
	}
	return f, nil
}

// GetSourceURL returns fs:///<name>.
func (l *FromFS) GetSourceURL() *url.URL {
	return l.sourceURL
}
