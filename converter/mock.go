package converter

import (
	"context"

	"github.com/robbyt/go-hlsyntax/theme"
	"github.com/stretchr/testify/mock"
)

// MockConverter implements Converter for tests.
type MockConverter struct {
	mock.Mock
}

func (m *MockConverter) Convert(ctx context.Context, f theme.TextFormat) (theme.TextFormat, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(theme.TextFormat), args.Error(1)
}

func (m *MockConverter) String() string {
	return "converter.MockConverter"
}
