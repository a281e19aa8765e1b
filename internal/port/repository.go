package port

import (
	"context"

	"gstsync/internal/domain"
)

// ShopRepository defines the contract for merchant settings persistence.
type ShopRepository interface {
	Get(ctx context.Context, shop string) (*domain.ShopSettings, error)
	Upsert(ctx context.Context, settings *domain.ShopSettings) error
}

// InvoiceRepository defines the contract for invoice record persistence.
type InvoiceRepository interface {
	GetByOrderID(ctx context.Context, shop, orderID string) (*domain.InvoiceRecord, error)
	// CreateIfAbsent inserts the record only when none exists for (shop, order_id).
	// It reports false, without error, when another writer got there first.
	CreateIfAbsent(ctx context.Context, rec *domain.InvoiceRecord) (bool, error)
	UpdateDocument(ctx context.Context, shop, orderID string, doc *domain.GeneratedDocument, status domain.InvoiceStatus) error
	UpdateStatus(ctx context.Context, shop, orderID string, status domain.InvoiceStatus) error
	ListMissingDocument(ctx context.Context, limit int) ([]domain.InvoiceRecord, error)
}

// OrderRepository defines the contract for merchant-facing order records.
type OrderRepository interface {
	Get(ctx context.Context, shop, orderID string) (*domain.OrderRecord, error)
	Upsert(ctx context.Context, rec *domain.OrderRecord) error
	UpdateDisplayStatus(ctx context.Context, shop, orderID string, status domain.OrderDisplayStatus) error
	SetInvoiceID(ctx context.Context, shop, orderID, invoiceID string) error
	SetExchangeOrder(ctx context.Context, shop, orderID, exchangeOrderID string) error
}

// ProcessingStateRepository tracks pipeline progress per order.
type ProcessingStateRepository interface {
	Get(ctx context.Context, shop, orderID string) (*domain.ProcessingRecord, error)
	Set(ctx context.Context, shop, orderID string, state domain.ProcessingState) error
}
