package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstsync/internal/domain"
)

// MockInvoiceRepo is a mock implementation of port.InvoiceRepository.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) GetByOrderID(ctx context.Context, shop, orderID string) (*domain.InvoiceRecord, error) {
	args := m.Called(ctx, shop, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceRecord), args.Error(1)
}

func (m *MockInvoiceRepo) CreateIfAbsent(ctx context.Context, rec *domain.InvoiceRecord) (bool, error) {
	args := m.Called(ctx, rec)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepo) UpdateDocument(ctx context.Context, shop, orderID string, doc *domain.GeneratedDocument, status domain.InvoiceStatus) error {
	args := m.Called(ctx, shop, orderID, doc, status)
	return args.Error(0)
}

func (m *MockInvoiceRepo) UpdateStatus(ctx context.Context, shop, orderID string, status domain.InvoiceStatus) error {
	args := m.Called(ctx, shop, orderID, status)
	return args.Error(0)
}

func (m *MockInvoiceRepo) ListMissingDocument(ctx context.Context, limit int) ([]domain.InvoiceRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceRecord), args.Error(1)
}
