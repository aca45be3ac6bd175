package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// InferLoader picks a Loader for input:
//   - a Loader is returned as is
//   - []byte and io.Reader are read into memory
//   - strings starting with http:// or https:// are fetched
//   - strings starting with "<" are inline XML
//   - other strings are file paths, made absolute against the working directory
func InferLoader(input any) (Loader, error) {
	switch v := input.(type) {
	case nil:
		return nil, fmt.Errorf("%w: input is nil", ErrInputEmpty)
	case Loader:
		return v, nil
	case []byte:
		return loaderOrNil(NewFromBytes(v))
	case io.Reader:
		return loaderOrNil(NewFromIoReader(v, "inferred"))
	case string:
		return inferFromString(v)
	default:
		return nil, fmt.Errorf("%w: unsupported input type %T", ErrGrammarNotAvailable, input)
	}
}

func inferFromString(s string) (Loader, error) {
	trimmed := strings.TrimSpace(s)
	switch {
	case trimmed == "":
		return nil, fmt.Errorf("%w: string is empty", ErrInputEmpty)
	case strings.HasPrefix(trimmed, "http://"), strings.HasPrefix(trimmed, "https://"):
		l, err := NewFromHTTP(trimmed)
		if err != nil {
			return nil, err
		}
		return l, nil
	case strings.HasPrefix(trimmed, "<"):
		return loaderOrNil(NewFromString(trimmed))
	case strings.HasPrefix(trimmed, "file://"):
		return diskOrNil(NewFromDisk(trimmed))
	}

	path, err := filepath.Abs(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGrammarNotAvailable, err)
	}
	return diskOrNil(NewFromDisk(path))
}

// loaderOrNil keeps a failed constructor from yielding a non-nil Loader that
// wraps a nil pointer.
func loaderOrNil(l *Inline, err error) (Loader, error) {
	if err != nil {
		return nil, err
	}
	return l, nil
}

func diskOrNil(l *FromDisk, err error) (Loader, error) {
	if err != nil {
		return nil, err
	}
	return l, nil
}
