package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"gstsync/internal/domain"
	"gstsync/internal/port"
)

const ledgerColumns = `shop, entry_key, order_id, order_number, invoice_id, invoice_date, period,
	line_index, line_item_id, product_id, title, hsn, quantity,
	customer_state, customer_state_code, company_state, company_state_code, company_gstin,
	place_of_supply, transaction_type, taxable_value, tax_rate, cgst, sgst, igst, total_tax,
	status, credit_note_id, credit_note_date, original_entry_key, created_at, updated_at`

const ledgerInsert = `INSERT INTO gst_ledger_entries (` + ledgerColumns + `) VALUES (
	:shop, :entry_key, :order_id, :order_number, :invoice_id, :invoice_date, :period,
	:line_index, :line_item_id, :product_id, :title, :hsn, :quantity,
	:customer_state, :customer_state_code, :company_state, :company_state_code, :company_gstin,
	:place_of_supply, :transaction_type, :taxable_value, :tax_rate, :cgst, :sgst, :igst, :total_tax,
	:status, :credit_note_id, :credit_note_date, :original_entry_key, :created_at, :updated_at
) ON CONFLICT (shop, entry_key) DO NOTHING`

type ledgerRepo struct {
	db *sqlx.DB
}

// NewLedgerRepo creates a new PostgreSQL-backed LedgerRepository.
func NewLedgerRepo(db *sqlx.DB) port.LedgerRepository {
	return &ledgerRepo{db: db}
}

func (r *ledgerRepo) PutBatch(ctx context.Context, entries []domain.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if len(entries) > domain.LedgerBatchSize {
		return fmt.Errorf("ledgerRepo.PutBatch: batch of %d exceeds %d", len(entries), domain.LedgerBatchSize)
	}

	now := time.Now().UTC()
	rows := make([]domain.LedgerEntry, len(entries))
	copy(rows, entries)
	for i := range rows {
		if rows[i].CreatedAt.IsZero() {
			rows[i].CreatedAt = now
		}
		rows[i].UpdatedAt = now
	}

	if _, err := r.db.NamedExecContext(ctx, ledgerInsert, rows); err != nil {
		return fmt.Errorf("ledgerRepo.PutBatch: %w", err)
	}
	return nil
}

func (r *ledgerRepo) ListByKeyPrefix(ctx context.Context, shop, prefix string) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT `+ledgerColumns+` FROM gst_ledger_entries
		 WHERE shop = $1 AND entry_key LIKE $2 ESCAPE '\'
		 ORDER BY entry_key`,
		shop, likePrefix(prefix))
	if err != nil {
		return nil, fmt.Errorf("ledgerRepo.ListByKeyPrefix: %w", err)
	}
	return entries, nil
}

func (r *ledgerRepo) ListByPeriod(ctx context.Context, shop, period string) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT `+ledgerColumns+` FROM gst_ledger_entries
		 WHERE shop = $1 AND period = $2
		 ORDER BY entry_key`,
		shop, period)
	if err != nil {
		return nil, fmt.Errorf("ledgerRepo.ListByPeriod: %w", err)
	}
	return entries, nil
}

func (r *ledgerRepo) CountByKeyPrefix(ctx context.Context, shop, prefix string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM gst_ledger_entries WHERE shop = $1 AND entry_key LIKE $2 ESCAPE '\'`,
		shop, likePrefix(prefix))
	if err != nil {
		return 0, fmt.Errorf("ledgerRepo.CountByKeyPrefix: %w", err)
	}
	return n, nil
}

func (r *ledgerRepo) UpdateStatus(ctx context.Context, shop, entryKey string, status domain.LedgerStatus, creditNoteID *string, creditNoteDate *time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE gst_ledger_entries SET
			status = $1,
			credit_note_id = COALESCE($2, credit_note_id),
			credit_note_date = COALESCE($3, credit_note_date),
			updated_at = $4
		 WHERE shop = $5 AND entry_key = $6`,
		status, creditNoteID, creditNoteDate, time.Now().UTC(), shop, entryKey)
	if err != nil {
		return fmt.Errorf("ledgerRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ledgerRepo) SetInvoiceID(ctx context.Context, shop, prefix, invoiceID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE gst_ledger_entries SET invoice_id = $1, updated_at = $2
		 WHERE shop = $3 AND entry_key LIKE $4 ESCAPE '\' AND invoice_id <> $1`,
		invoiceID, time.Now().UTC(), shop, likePrefix(prefix))
	if err != nil {
		return 0, fmt.Errorf("ledgerRepo.SetInvoiceID: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePrefix turns a literal key prefix into a LIKE pattern.
func likePrefix(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}
