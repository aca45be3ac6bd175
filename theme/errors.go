package theme

import "errors"

var (
	ErrUnknownStyle  = errors.New("unknown default style")
	ErrInvalidFormat = errors.New("invalid text format")
	ErrThemeLoad     = errors.New("failed to load theme")
)
