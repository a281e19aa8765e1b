package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gstsync/internal/domain"
	"gstsync/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) GetByOrderID(ctx context.Context, shop, orderID string) (*domain.InvoiceRecord, error) {
	var rec domain.InvoiceRecord
	err := r.db.GetContext(ctx, &rec,
		"SELECT * FROM invoices WHERE shop = $1 AND order_id = $2", shop, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByOrderID: %w", err)
	}
	return &rec, nil
}

func (r *invoiceRepo) CreateIfAbsent(ctx context.Context, rec *domain.InvoiceRecord) (bool, error) {
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if rec.Status == "" {
		rec.Status = domain.InvoiceStatusGenerated
	}

	result, err := r.db.NamedExecContext(ctx,
		`INSERT INTO invoices (
			shop, order_id, invoice_id, order_number, customer_name, customer_email,
			document_ref, storage_key, total, status, created_at, updated_at
		) VALUES (
			:shop, :order_id, :invoice_id, :order_number, :customer_name, :customer_email,
			:document_ref, :storage_key, :total, :status, :created_at, :updated_at
		) ON CONFLICT (shop, order_id) DO NOTHING`, rec)
	if err != nil {
		return false, fmt.Errorf("invoiceRepo.CreateIfAbsent: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows == 1, nil
}

func (r *invoiceRepo) UpdateDocument(ctx context.Context, shop, orderID string, doc *domain.GeneratedDocument, status domain.InvoiceStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET document_ref = $1, storage_key = $2, status = $3, updated_at = $4
		 WHERE shop = $5 AND order_id = $6`,
		doc.DocumentRef, doc.StorageKey, status, time.Now().UTC(), shop, orderID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateDocument: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, shop, orderID string, status domain.InvoiceStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE invoices SET status = $1, updated_at = $2 WHERE shop = $3 AND order_id = $4",
		status, time.Now().UTC(), shop, orderID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) ListMissingDocument(ctx context.Context, limit int) ([]domain.InvoiceRecord, error) {
	var recs []domain.InvoiceRecord
	err := r.db.SelectContext(ctx, &recs,
		`SELECT * FROM invoices WHERE document_ref = ''
		 ORDER BY created_at ASC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListMissingDocument: %w", err)
	}
	return recs, nil
}
