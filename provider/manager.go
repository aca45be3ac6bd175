// Package provider resolves grammars by name for the compiler. A Manager
// compiles each grammar at most once and caches it as soon as its contexts
// are declared, so grammars that include each other terminate.
package provider

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/robbyt/go-hlsyntax/compiler"
	"github.com/robbyt/go-hlsyntax/grammar"
)

// Manager is a memoizing compiler.Provider backed by a Catalog. It is safe for
// concurrent use; lookups are serialized.
type Manager struct {
	mu           sync.Mutex
	catalog      *Catalog
	cache        map[string]*grammar.Syntax
	compilerOpts []compiler.FunctionalOption
	logHandler   slog.Handler
	logger       *slog.Logger
}

// NewManager creates a manager over catalog.
func NewManager(catalog *Catalog, opts ...Option) (*Manager, error) {
	if catalog == nil {
		return nil, ErrCatalogNil
	}
	m := &Manager{
		catalog: catalog,
		cache:   make(map[string]*grammar.Syntax),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}
	m.setupLogger()
	return m, nil
}

func (m *Manager) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fmt.Sprintf("provider.Manager{Catalog: %d, Compiled: %d}", m.catalog.Len(), len(m.cache))
}

// Catalog returns the catalog the manager resolves names against.
func (m *Manager) Catalog() *Catalog {
	return m.catalog
}

// SyntaxByName returns the compiled grammar called name, compiling it and any
// grammar it includes on first use.
func (m *Manager) SyntaxByName(name string) (*grammar.Syntax, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &session{m: m}
	return s.SyntaxByName(name)
}

// SyntaxForFile returns the grammar registered for a file name.
func (m *Manager) SyntaxForFile(file string) (*grammar.Syntax, error) {
	name, ok := m.catalog.ForFileName(file)
	if !ok {
		return nil, fmt.Errorf("%w: file %q", ErrNoMatch, file)
	}
	return m.SyntaxByName(name)
}

// SyntaxForMimeType returns the grammar registered for a mime type.
func (m *Manager) SyntaxForMimeType(mime string) (*grammar.Syntax, error) {
	name, ok := m.catalog.ForMimeType(mime)
	if !ok {
		return nil, fmt.Errorf("%w: mime type %q", ErrNoMatch, mime)
	}
	return m.SyntaxByName(name)
}

// Compiled returns the names of grammars compiled so far, sorted.
func (m *Manager) Compiled() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.cache))
	for _, s := range m.cache {
		names = append(names, s.Name())
	}
	slices.Sort(names)
	return names
}

// session carries one public lookup through nested includes while the
// manager lock is held.
type session struct {
	m     *Manager
	added []string
}

func (s *session) SyntaxByName(name string) (*grammar.Syntax, error) {
	key := strings.ToLower(name)
	if syn, ok := s.m.cache[key]; ok {
		return syn, nil
	}

	entry, ok := s.m.catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGrammarNotFound, name)
	}

	logger := s.m.logger.With("grammar", entry.Meta.Name)
	mark := len(s.added)

	opts := []compiler.FunctionalOption{compiler.WithLogHandler(s.m.logHandler)}
	opts = append(opts, s.m.compilerOpts...)
	opts = append(opts,
		compiler.WithProvider(s),
		compiler.WithOnContextsDeclared(func(syn *grammar.Syntax) {
			s.m.cache[key] = syn
			s.added = append(s.added, key)
		}),
	)

	c, err := compiler.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create compiler: %w", err)
	}

	logger.Debug("compiling grammar", "source", entry.Loader.GetSourceURL())
	syn, err := c.CompileLoader(entry.Loader)
	if err != nil {
		// Drop everything cached since this compile began; later entries may
		// point at the failed, unsealed shell.
		for _, k := range s.added[mark:] {
			delete(s.m.cache, k)
		}
		s.added = s.added[:mark]
		logger.Error("grammar failed to compile", "error", err)
		return nil, err
	}
	return syn, nil
}
