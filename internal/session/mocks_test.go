package session

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Moeabdelaziz007/amrikyyai/internal/domain"
)

// MockQueryClient mocks the QueryClient interface
type MockQueryClient struct {
	mock.Mock
}

func (m *MockQueryClient) Query(ctx context.Context, req domain.QueryRequest) (*domain.QueryResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QueryResponse), args.Error(1)
}

func (m *MockQueryClient) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Conversation), args.Error(1)
}
