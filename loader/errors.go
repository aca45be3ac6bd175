package loader

import "errors"

var (
	ErrSchemeUnsupported   = errors.New("unsupported scheme")
	ErrGrammarNotAvailable = errors.New("grammar not available")
	ErrInputEmpty          = errors.New("input is empty")
)
