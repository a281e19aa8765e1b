package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstsync/internal/domain"
)

// MockShopRepo is a mock implementation of port.ShopRepository.
type MockShopRepo struct {
	mock.Mock
}

func (m *MockShopRepo) Get(ctx context.Context, shop string) (*domain.ShopSettings, error) {
	args := m.Called(ctx, shop)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShopSettings), args.Error(1)
}

func (m *MockShopRepo) Upsert(ctx context.Context, settings *domain.ShopSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}
