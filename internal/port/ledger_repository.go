package port

import (
	"context"
	"time"

	"gstsync/internal/domain"
)

// LedgerRepository defines the contract for GST ledger persistence.
// Entries are keyed by (shop, entry_key) and indexed by (shop, period).
type LedgerRepository interface {
	// PutBatch writes at most domain.LedgerBatchSize entries. Existing keys are left untouched.
	PutBatch(ctx context.Context, entries []domain.LedgerEntry) error
	ListByKeyPrefix(ctx context.Context, shop, prefix string) ([]domain.LedgerEntry, error)
	ListByPeriod(ctx context.Context, shop, period string) ([]domain.LedgerEntry, error)
	CountByKeyPrefix(ctx context.Context, shop, prefix string) (int, error)
	UpdateStatus(ctx context.Context, shop, entryKey string, status domain.LedgerStatus, creditNoteID *string, creditNoteDate *time.Time) error
	SetInvoiceID(ctx context.Context, shop, prefix, invoiceID string) (int64, error)
}
