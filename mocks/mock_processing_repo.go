package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstsync/internal/domain"
)

// MockProcessingRepo is a mock implementation of port.ProcessingStateRepository.
type MockProcessingRepo struct {
	mock.Mock
}

func (m *MockProcessingRepo) Get(ctx context.Context, shop, orderID string) (*domain.ProcessingRecord, error) {
	args := m.Called(ctx, shop, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProcessingRecord), args.Error(1)
}

func (m *MockProcessingRepo) Set(ctx context.Context, shop, orderID string, state domain.ProcessingState) error {
	args := m.Called(ctx, shop, orderID, state)
	return args.Error(0)
}
