package grammar

import "errors"

var (
	ErrSealed       = errors.New("grammar is sealed")
	ErrParserSet    = errors.New("syntax already owns a parser")
	ErrNoParser     = errors.New("syntax has no parser")
	ErrForeignShell = errors.New("context belongs to another parser")
)
