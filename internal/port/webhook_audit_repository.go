package port

import (
	"context"

	"gstsync/internal/domain"
)

// WebhookAuditRepository defines the contract for webhook audit log persistence.
type WebhookAuditRepository interface {
	Create(ctx context.Context, entry *domain.WebhookAuditEntry) error
	ListByOrder(ctx context.Context, shop, orderID string, limit int) ([]domain.WebhookAuditEntry, error)
}
