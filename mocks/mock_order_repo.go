package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstsync/internal/domain"
)

// MockOrderRepo is a mock implementation of port.OrderRepository.
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Get(ctx context.Context, shop, orderID string) (*domain.OrderRecord, error) {
	args := m.Called(ctx, shop, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderRecord), args.Error(1)
}

func (m *MockOrderRepo) Upsert(ctx context.Context, rec *domain.OrderRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockOrderRepo) UpdateDisplayStatus(ctx context.Context, shop, orderID string, status domain.OrderDisplayStatus) error {
	args := m.Called(ctx, shop, orderID, status)
	return args.Error(0)
}

func (m *MockOrderRepo) SetInvoiceID(ctx context.Context, shop, orderID, invoiceID string) error {
	args := m.Called(ctx, shop, orderID, invoiceID)
	return args.Error(0)
}

func (m *MockOrderRepo) SetExchangeOrder(ctx context.Context, shop, orderID, exchangeOrderID string) error {
	args := m.Called(ctx, shop, orderID, exchangeOrderID)
	return args.Error(0)
}
