package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gstsync/internal/domain"
)

// MockLedgerService is a mock implementation of service.LedgerService.
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) WriteOrderItems(ctx context.Context, shop string, meta domain.OrderMeta, items []domain.GSTLineItemMeta, company domain.CompanyInfo) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, shop, meta, items, company)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) UpdateStatus(ctx context.Context, shop, orderNumber string, status domain.LedgerStatus, creditNote *domain.CreditNoteInfo) (int, error) {
	args := m.Called(ctx, shop, orderNumber, status, creditNote)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerService) CreateReturnEntries(ctx context.Context, shop, orderNumber string, items []domain.ReturnedItem, creditNote domain.CreditNoteInfo) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, shop, orderNumber, items, creditNote)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) HasEntries(ctx context.Context, shop, orderNumber string) (bool, error) {
	args := m.Called(ctx, shop, orderNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerService) OrderEntries(ctx context.Context, shop, orderNumber string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, shop, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) ReversalEntries(ctx context.Context, shop, orderNumber string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, shop, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) AttachInvoice(ctx context.Context, shop, orderNumber, invoiceID string) error {
	args := m.Called(ctx, shop, orderNumber, invoiceID)
	return args.Error(0)
}

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) QueryRange(ctx context.Context, shop string, start, end time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, shop, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockReportService) GSTReport(ctx context.Context, shop string, period domain.ReportPeriod) (*domain.GSTReport, error) {
	args := m.Called(ctx, shop, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GSTReport), args.Error(1)
}

// MockWebhookService is a mock implementation of service.WebhookService.
type MockWebhookService struct {
	mock.Mock
}

func (m *MockWebhookService) HandleOrderCreated(ctx context.Context, shop string, order *domain.RawOrder) (domain.PipelineOutcome, error) {
	args := m.Called(ctx, shop, order)
	return args.Get(0).(domain.PipelineOutcome), args.Error(1)
}

func (m *MockWebhookService) HandleOrderUpdated(ctx context.Context, shop string, order *domain.RawOrder) (domain.PipelineOutcome, error) {
	args := m.Called(ctx, shop, order)
	return args.Get(0).(domain.PipelineOutcome), args.Error(1)
}

func (m *MockWebhookService) HandleOrderCancelled(ctx context.Context, shop string, order *domain.RawOrder) (domain.PipelineOutcome, error) {
	args := m.Called(ctx, shop, order)
	return args.Get(0).(domain.PipelineOutcome), args.Error(1)
}

func (m *MockWebhookService) HandleRefundCreated(ctx context.Context, shop string, refund *domain.RawRefund) (domain.PipelineOutcome, error) {
	args := m.Called(ctx, shop, refund)
	return args.Get(0).(domain.PipelineOutcome), args.Error(1)
}

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) GetDetail(ctx context.Context, shop, orderID string) (*domain.InvoiceDetail, error) {
	args := m.Called(ctx, shop, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceDetail), args.Error(1)
}
