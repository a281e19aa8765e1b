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

type shopRepo struct {
	db *sqlx.DB
}

// NewShopRepo creates a new PostgreSQL-backed ShopRepository.
func NewShopRepo(db *sqlx.DB) port.ShopRepository {
	return &shopRepo{db: db}
}

func (r *shopRepo) Get(ctx context.Context, shop string) (*domain.ShopSettings, error) {
	var s domain.ShopSettings
	err := r.db.GetContext(ctx, &s, "SELECT * FROM shops WHERE shop = $1", shop)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("shopRepo.Get: %w", err)
	}
	return &s, nil
}

func (r *shopRepo) Upsert(ctx context.Context, settings *domain.ShopSettings) error {
	now := time.Now().UTC()
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO shops (
			shop, company_name, gstin, address, state, per_warehouse_tax,
			access_token, invoice_prefix, created_at, updated_at
		) VALUES (
			:shop, :company_name, :gstin, :address, :state, :per_warehouse_tax,
			:access_token, :invoice_prefix, :created_at, :updated_at
		) ON CONFLICT (shop) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			gstin = EXCLUDED.gstin,
			address = EXCLUDED.address,
			state = EXCLUDED.state,
			per_warehouse_tax = EXCLUDED.per_warehouse_tax,
			access_token = EXCLUDED.access_token,
			invoice_prefix = EXCLUDED.invoice_prefix,
			updated_at = EXCLUDED.updated_at`, settings)
	if err != nil {
		return fmt.Errorf("shopRepo.Upsert: %w", err)
	}
	return nil
}
