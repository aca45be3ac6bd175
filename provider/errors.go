package provider

import "errors"

var (
	ErrGrammarNotFound = errors.New("grammar not found")
	ErrCatalogNil      = errors.New("catalog is nil")
	ErrNoMatch         = errors.New("no grammar matches")
	ErrGrammarUnnamed  = errors.New("grammar has no name")
)
