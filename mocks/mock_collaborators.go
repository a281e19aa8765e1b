package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gstsync/internal/domain"
)

// MockDocumentGenerator is a mock implementation of port.DocumentGenerator.
type MockDocumentGenerator struct {
	mock.Mock
}

func (m *MockDocumentGenerator) Generate(ctx context.Context, shop string, doc *domain.InvoiceDocument) (*domain.GeneratedDocument, error) {
	args := m.Called(ctx, shop, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedDocument), args.Error(1)
}

// MockClassificationFetcher is a mock implementation of port.ClassificationFetcher.
type MockClassificationFetcher struct {
	mock.Mock
}

func (m *MockClassificationFetcher) FetchProductHSN(ctx context.Context, shop, productID string) (string, error) {
	args := m.Called(ctx, shop, productID)
	return args.String(0), args.Error(1)
}

// MockLocationResolver is a mock implementation of port.LocationResolver.
type MockLocationResolver struct {
	mock.Mock
}

func (m *MockLocationResolver) LocationProvince(ctx context.Context, shop string, locationID int64) (string, error) {
	args := m.Called(ctx, shop, locationID)
	return args.String(0), args.Error(1)
}

// MockHSNCache is a mock implementation of port.HSNCache.
type MockHSNCache struct {
	mock.Mock
}

func (m *MockHSNCache) Get(ctx context.Context, shop, productID string) (string, bool, error) {
	args := m.Called(ctx, shop, productID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockHSNCache) Set(ctx context.Context, shop, productID, code string, ttl time.Duration) error {
	args := m.Called(ctx, shop, productID, code, ttl)
	return args.Error(0)
}
