package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gstsync/internal/domain"
)

// MockLedgerRepo is a mock implementation of port.LedgerRepository.
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) PutBatch(ctx context.Context, entries []domain.LedgerEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLedgerRepo) ListByKeyPrefix(ctx context.Context, shop, prefix string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, shop, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepo) ListByPeriod(ctx context.Context, shop, period string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, shop, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepo) CountByKeyPrefix(ctx context.Context, shop, prefix string) (int, error) {
	args := m.Called(ctx, shop, prefix)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerRepo) UpdateStatus(ctx context.Context, shop, entryKey string, status domain.LedgerStatus, creditNoteID *string, creditNoteDate *time.Time) error {
	args := m.Called(ctx, shop, entryKey, status, creditNoteID, creditNoteDate)
	return args.Error(0)
}

func (m *MockLedgerRepo) SetInvoiceID(ctx context.Context, shop, prefix, invoiceID string) (int64, error) {
	args := m.Called(ctx, shop, prefix, invoiceID)
	return args.Get(0).(int64), args.Error(1)
}
