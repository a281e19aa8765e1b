package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstsync/internal/domain"
	"gstsync/internal/port"
)

type webhookAuditRepo struct {
	db *sqlx.DB
}

// NewWebhookAuditRepo creates a new PostgreSQL-backed WebhookAuditRepository.
func NewWebhookAuditRepo(db *sqlx.DB) port.WebhookAuditRepository {
	return &webhookAuditRepo{db: db}
}

func (r *webhookAuditRepo) Create(ctx context.Context, entry *domain.WebhookAuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO webhook_audit (id, shop, topic, order_id, outcome, detail, created_at)
		 VALUES (:id, :shop, :topic, :order_id, :outcome, :detail, :created_at)`, entry)
	if err != nil {
		return fmt.Errorf("webhookAuditRepo.Create: %w", err)
	}
	return nil
}

func (r *webhookAuditRepo) ListByOrder(ctx context.Context, shop, orderID string, limit int) ([]domain.WebhookAuditEntry, error) {
	var entries []domain.WebhookAuditEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT id, shop, topic, order_id, outcome, detail, created_at FROM webhook_audit
		 WHERE shop = $1 AND order_id = $2
		 ORDER BY created_at DESC LIMIT $3`,
		shop, orderID, limit)
	if err != nil {
		return nil, fmt.Errorf("webhookAuditRepo.ListByOrder: %w", err)
	}
	return entries, nil
}
