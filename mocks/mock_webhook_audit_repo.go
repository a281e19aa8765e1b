package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstsync/internal/domain"
)

// MockWebhookAuditRepo is a mock implementation of port.WebhookAuditRepository.
type MockWebhookAuditRepo struct {
	mock.Mock
}

func (m *MockWebhookAuditRepo) Create(ctx context.Context, entry *domain.WebhookAuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockWebhookAuditRepo) ListByOrder(ctx context.Context, shop, orderID string, limit int) ([]domain.WebhookAuditEntry, error) {
	args := m.Called(ctx, shop, orderID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WebhookAuditEntry), args.Error(1)
}
