package provider

import (
	"cmp"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	"github.com/robbyt/go-hlsyntax/compiler"
	"github.com/robbyt/go-hlsyntax/grammar"
	"github.com/robbyt/go-hlsyntax/internal/helpers"
	"github.com/robbyt/go-hlsyntax/loader"
)

// Entry is one grammar known to a Catalog, indexed by its root metadata.
type Entry struct {
	Meta     grammar.Metadata
	Loader   loader.Loader
	Priority int

	patterns []glob.Glob
}

func (e *Entry) matchesFile(base string) bool {
	for _, g := range e.patterns {
		if g.Match(base) {
			return true
		}
	}
	return false
}

// Catalog indexes grammar sources by name, file pattern and mime type without
// compiling them. Only the root element of each document is read.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	logger  *slog.Logger
}

// NewCatalog creates an empty catalog. A nil handler uses the default logger.
func NewCatalog(handler slog.Handler) *Catalog {
	_, logger := helpers.SetupLogger(handler, "hlsyntax", "Catalog")
	return &Catalog{
		entries: make(map[string]*Entry),
		logger:  logger,
	}
}

func (c *Catalog) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fmt.Sprintf("provider.Catalog{Grammars: %d}", len(c.entries))
}

// Add reads the metadata of the grammar behind l and indexes it. When two
// grammars share a name the one with the higher priority is kept; on a tie
// the first one added stays.
func (c *Catalog) Add(l loader.Loader) (grammar.Metadata, error) {
	reader, err := l.GetReader()
	if err != nil {
		return grammar.Metadata{}, fmt.Errorf("failed to get grammar reader: %w", err)
	}
	defer func() { _ = reader.Close() }()

	meta, err := compiler.ReadMetadata(reader)
	if err != nil {
		return grammar.Metadata{}, err
	}
	if meta.Name == "" {
		return meta, fmt.Errorf("%w: %s", ErrGrammarUnnamed, l.GetSourceURL())
	}

	entry := &Entry{
		Meta:     meta,
		Loader:   l,
		Priority: c.parsePriority(meta),
	}
	for _, ext := range meta.Extensions {
		g, err := glob.Compile(ext)
		if err != nil {
			c.logger.Warn("skipping invalid extension pattern",
				"grammar", meta.Name, "pattern", ext, "error", err)
			continue
		}
		entry.patterns = append(entry.patterns, g)
	}

	key := strings.ToLower(meta.Name)

	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.entries[key]; ok {
		if prev.Priority >= entry.Priority {
			c.logger.Debug("keeping existing grammar",
				"name", meta.Name, "kept", prev.Loader.GetSourceURL(), "ignored", l.GetSourceURL())
			return prev.Meta, nil
		}
		c.logger.Debug("replacing grammar with higher priority",
			"name", meta.Name, "priority", entry.Priority)
	}
	c.entries[key] = entry
	return meta, nil
}

// AddFS indexes every file of fsys matching pattern (fs.Glob syntax) and
// returns how many were added. Files that fail to load are logged and skipped.
func (c *Catalog) AddFS(fsys fs.FS, pattern string) (int, error) {
	names, err := fs.Glob(fsys, pattern)
	if err != nil {
		return 0, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	added := 0
	for _, name := range names {
		l, err := loader.NewFromFS(fsys, name)
		if err != nil {
			return added, err
		}
		if _, err := c.Add(l); err != nil {
			c.logger.Warn("skipping grammar", "file", name, "error", err)
			continue
		}
		added++
	}
	return added, nil
}

// Lookup returns the entry for a grammar name, case-insensitively.
func (c *Catalog) Lookup(name string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[strings.ToLower(name)]
	return e, ok
}

// ForFileName returns the grammar whose extension patterns match the base
// name of file. The highest priority wins, then the lowest name.
func (c *Catalog) ForFileName(file string) (string, bool) {
	base := path.Base(strings.ReplaceAll(file, "\\", "/"))
	return c.best(func(e *Entry) bool { return e.matchesFile(base) })
}

// ForMimeType returns the grammar declaring mime, compared case-insensitively.
func (c *Catalog) ForMimeType(mime string) (string, bool) {
	return c.best(func(e *Entry) bool {
		return slices.ContainsFunc(e.Meta.MimeTypes, func(m string) bool {
			return strings.EqualFold(m, mime)
		})
	})
}

// Names returns all grammar names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		names = append(names, e.Meta.Name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of indexed grammars.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Catalog) best(match func(*Entry) bool) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var found []*Entry
	for _, e := range c.entries {
		if match(e) {
			found = append(found, e)
		}
	}
	if len(found) == 0 {
		return "", false
	}
	slices.SortFunc(found, func(a, b *Entry) int {
		if a.Priority != b.Priority {
			return cmp.Compare(b.Priority, a.Priority)
		}
		return cmp.Compare(a.Meta.Name, b.Meta.Name)
	})
	return found[0].Meta.Name, true
}

func (c *Catalog) parsePriority(meta grammar.Metadata) int {
	if meta.Priority == "" {
		return 0
	}
	p, err := strconv.Atoi(strings.TrimSpace(meta.Priority))
	if err != nil {
		c.logger.Warn("invalid priority, using 0", "grammar", meta.Name, "priority", meta.Priority)
		return 0
	}
	return p
}
