package loader

import (
	"bytes"
	"io"
	"net/url"

	"github.com/stretchr/testify/mock"
)

// MockLoader implements Loader for tests.
type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) GetSourceURL() *url.URL {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*url.URL)
}

// GetReader returns the mocked reader. A func() io.ReadCloser return value is
// called on each invocation.
func (m *MockLoader) GetReader() (io.ReadCloser, error) {
	args := m.Called()
	switch r := args.Get(0).(type) {
	case nil:
		return nil, args.Error(1)
	case func() io.ReadCloser:
		return r(), args.Error(1)
	default:
		return r.(io.ReadCloser), args.Error(1)
	}
}

// NewMockLoaderWithContent returns a mock whose GetReader yields a fresh
// reader over content on every call and whose source URL is mock://grammar.
func NewMockLoaderWithContent(content []byte) *MockLoader {
	m := new(MockLoader)
	m.On("GetReader").Return(func() io.ReadCloser {
		return io.NopCloser(bytes.NewReader(content))
	}, nil)
	m.On("GetSourceURL").Return(&url.URL{Scheme: "mock", Host: "grammar"})
	return m
}
