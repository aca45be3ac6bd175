package compiler

import "errors"

var (
	ErrContentNil   = errors.New("grammar content is nil")
	ErrParseXML     = errors.New("malformed grammar document")
	ErrNoContexts   = errors.New("grammar declares no contexts")
	ErrUnknownRule  = errors.New("unknown rule element")
	ErrInvalidBool  = errors.New("invalid boolean attribute")
	ErrRegistration = errors.New("invalid rule registration")
)

// isCompileFailure reports whether err comes from compiling a grammar document,
// as opposed to locating or reading it.
func isCompileFailure(err error) bool {
	return errors.Is(err, ErrUnknownRule) ||
		errors.Is(err, ErrInvalidBool) ||
		errors.Is(err, ErrParseXML) ||
		errors.Is(err, ErrNoContexts)
}
