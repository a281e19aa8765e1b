package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"gstsync/internal/domain"
	"gstsync/internal/port"
)

const deliveryHistoryLimit = 50

// InvoiceService defines the read-side operations on a single order's invoice.
type InvoiceService interface {
	GetDetail(ctx context.Context, shop, orderID string) (*domain.InvoiceDetail, error)
}

type invoiceService struct {
	invoices      port.InvoiceRepository
	ledger        port.LedgerRepository
	audits        port.WebhookAuditRepository
	storage       port.ObjectStorage
	bucket        string
	presignExpiry int64
}

// NewInvoiceService creates a new InvoiceService. storage may be nil, in which
// case no document links are produced.
func NewInvoiceService(
	invoices port.InvoiceRepository,
	ledger port.LedgerRepository,
	audits port.WebhookAuditRepository,
	storage port.ObjectStorage,
	bucket string,
	presignExpiry int64,
) InvoiceService {
	if presignExpiry <= 0 {
		presignExpiry = 3600
	}
	return &invoiceService{
		invoices:      invoices,
		ledger:        ledger,
		audits:        audits,
		storage:       storage,
		bucket:        bucket,
		presignExpiry: presignExpiry,
	}
}

func (s *invoiceService) GetDetail(ctx context.Context, shop, orderID string) (*domain.InvoiceDetail, error) {
	inv, err := s.invoices.GetByOrderID(ctx, shop, orderID)
	if err != nil {
		return nil, fmt.Errorf("invoiceService.GetDetail: %w", err)
	}

	entries, err := s.ledger.ListByKeyPrefix(ctx, shop, domain.LedgerKeyPrefix(inv.OrderNumber))
	if err != nil {
		return nil, fmt.Errorf("invoiceService.GetDetail: %w", err)
	}
	reversals, err := s.ledger.ListByKeyPrefix(ctx, shop, domain.CreditNotePrefix(inv.OrderNumber))
	if err != nil {
		return nil, fmt.Errorf("invoiceService.GetDetail: %w", err)
	}
	entries = append(entries, reversals...)
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}

	deliveries, err := s.audits.ListByOrder(ctx, shop, orderID, deliveryHistoryLimit)
	if err != nil {
		log.Printf("invoiceService.GetDetail: delivery history for %s/%s: %v", shop, orderID, err)
	}
	if deliveries == nil {
		deliveries = []domain.WebhookAuditEntry{}
	}

	detail := &domain.InvoiceDetail{
		Invoice:       inv,
		LedgerEntries: entries,
		Deliveries:    deliveries,
	}

	if inv.StorageKey != "" && s.storage != nil {
		url, err := s.storage.GetPresignedURL(ctx, s.bucket, inv.StorageKey, s.presignExpiry)
		if err != nil {
			log.Printf("invoiceService.GetDetail: presign %s: %v", inv.StorageKey, err)
		} else {
			detail.DocumentURL = url
		}
	}
	return detail, nil
}
