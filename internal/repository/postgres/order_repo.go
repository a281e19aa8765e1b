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

type orderRepo struct {
	db *sqlx.DB
}

// NewOrderRepo creates a new PostgreSQL-backed OrderRepository.
func NewOrderRepo(db *sqlx.DB) port.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Get(ctx context.Context, shop, orderID string) (*domain.OrderRecord, error) {
	var rec domain.OrderRecord
	err := r.db.GetContext(ctx, &rec,
		"SELECT * FROM orders WHERE shop = $1 AND order_id = $2", shop, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("orderRepo.Get: %w", err)
	}
	return &rec, nil
}

// Upsert stores the latest payload. The display status is only written on
// insert so later lifecycle transitions are not overwritten by a replay.
func (r *orderRepo) Upsert(ctx context.Context, rec *domain.OrderRecord) error {
	rec.UpdatedAt = time.Now().UTC()
	if len(rec.Payload) == 0 {
		rec.Payload = []byte("{}")
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO orders (shop, order_id, order_number, display_status, payload, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (shop, order_id) DO UPDATE SET
			order_number = EXCLUDED.order_number,
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at`,
		rec.Shop, rec.OrderID, rec.OrderNumber, rec.DisplayStatus, rec.Payload, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("orderRepo.Upsert: %w", err)
	}
	return nil
}

func (r *orderRepo) UpdateDisplayStatus(ctx context.Context, shop, orderID string, status domain.OrderDisplayStatus) error {
	return r.exec(ctx, "orderRepo.UpdateDisplayStatus",
		"UPDATE orders SET display_status = $1, updated_at = $2 WHERE shop = $3 AND order_id = $4",
		status, time.Now().UTC(), shop, orderID)
}

func (r *orderRepo) SetInvoiceID(ctx context.Context, shop, orderID, invoiceID string) error {
	return r.exec(ctx, "orderRepo.SetInvoiceID",
		"UPDATE orders SET invoice_id = $1, updated_at = $2 WHERE shop = $3 AND order_id = $4",
		invoiceID, time.Now().UTC(), shop, orderID)
}

func (r *orderRepo) SetExchangeOrder(ctx context.Context, shop, orderID, exchangeOrderID string) error {
	return r.exec(ctx, "orderRepo.SetExchangeOrder",
		"UPDATE orders SET exchange_order_id = $1, updated_at = $2 WHERE shop = $3 AND order_id = $4",
		exchangeOrderID, time.Now().UTC(), shop, orderID)
}

func (r *orderRepo) exec(ctx context.Context, op, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
