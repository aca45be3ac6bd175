package grammar

import (
	"fmt"
	"net/url"
	"slices"
)

// Metadata is the identity of a grammar, read from the root element.
type Metadata struct {
	Name        string
	Section     string
	Extensions  []string
	MimeTypes   []string
	Version     string
	KateVersion string
	Priority    string
	Author      string
	License     string
	Hidden      bool
}

// Syntax is one compiled grammar. It owns exactly one Parser. After Seal the
// syntax and everything reachable from it is read-only and safe for concurrent use.
type Syntax struct {
	meta        Metadata
	source      *url.URL
	parser      *Parser
	diagnostics []Diagnostic
	sealed      bool
}

// NewSyntax creates an unsealed syntax; source may be nil.
func NewSyntax(meta Metadata, source *url.URL) *Syntax {
	meta.Extensions = slices.Clone(meta.Extensions)
	meta.MimeTypes = slices.Clone(meta.MimeTypes)
	return &Syntax{meta: meta, source: source}
}

// Name returns the grammar name.
func (s *Syntax) Name() string {
	return s.meta.Name
}

// Metadata returns a copy of the grammar metadata.
func (s *Syntax) Metadata() Metadata {
	m := s.meta
	m.Extensions = slices.Clone(m.Extensions)
	m.MimeTypes = slices.Clone(m.MimeTypes)
	return m
}

// SourceURL returns where the grammar was loaded from, or nil.
func (s *Syntax) SourceURL() *url.URL {
	return s.source
}

// Parser returns the parser, nil before one was attached.
func (s *Syntax) Parser() *Parser {
	return s.parser
}

// Diagnostics returns the lenient recoveries recorded while compiling.
func (s *Syntax) Diagnostics() []Diagnostic {
	return slices.Clone(s.diagnostics)
}

// AddDiagnostic records a diagnostic on an unsealed syntax.
func (s *Syntax) AddDiagnostic(d Diagnostic) error {
	if s.sealed {
		return ErrSealed
	}
	s.diagnostics = append(s.diagnostics, d)
	return nil
}

// Sealed reports whether Seal was called.
func (s *Syntax) Sealed() bool {
	return s.sealed
}

// Seal freezes the syntax and its parser.
func (s *Syntax) Seal() error {
	if s.parser == nil {
		return ErrNoParser
	}
	s.sealed = true
	s.parser.sealed = true
	return nil
}

func (s *Syntax) String() string {
	contexts := 0
	if s.parser != nil {
		contexts = len(s.parser.contexts)
	}
	return fmt.Sprintf("Syntax{name: %q, section: %q, contexts: %d, diagnostics: %d}",
		s.meta.Name, s.meta.Section, contexts, len(s.diagnostics))
}
