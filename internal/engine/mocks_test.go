package engine

import (
	"context"

	"github.com/jmorelli/confab/internal/backend"
	"github.com/stretchr/testify/mock"
)

// MockBackend mocks the Backend interface
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Send(ctx context.Context, ownerID, content string) (*backend.Reply, error) {
	args := m.Called(ctx, ownerID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.Reply), args.Error(1)
}
