package converter

import "errors"

var (
	ErrContentNil    = errors.New("converter source is empty")
	ErrCompileFailed = errors.New("converter failed to compile")
	ErrNoConvertFunc = errors.New("converter entry point not found")
	ErrExecFailed    = errors.New("converter execution failed")
	ErrInvalidResult = errors.New("converter returned an invalid result")
)
