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

type processingRepo struct {
	db *sqlx.DB
}

// NewProcessingRepo creates a new PostgreSQL-backed ProcessingStateRepository.
func NewProcessingRepo(db *sqlx.DB) port.ProcessingStateRepository {
	return &processingRepo{db: db}
}

func (r *processingRepo) Get(ctx context.Context, shop, orderID string) (*domain.ProcessingRecord, error) {
	var rec domain.ProcessingRecord
	err := r.db.GetContext(ctx, &rec,
		"SELECT shop, order_id, state, updated_at FROM order_processing WHERE shop = $1 AND order_id = $2",
		shop, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("processingRepo.Get: %w", err)
	}
	return &rec, nil
}

func (r *processingRepo) Set(ctx context.Context, shop, orderID string, state domain.ProcessingState) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO order_processing (shop, order_id, state, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (shop, order_id) DO UPDATE SET state = EXCLUDED.state, updated_at = EXCLUDED.updated_at`,
		shop, orderID, state, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("processingRepo.Set: %w", err)
	}
	return nil
}
