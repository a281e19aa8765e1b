package port

import (
	"context"
	"time"

	"gstsync/internal/domain"
)

// DocumentGenerator renders an invoice document and returns where it lives.
type DocumentGenerator interface {
	Generate(ctx context.Context, shop string, doc *domain.InvoiceDocument) (*domain.GeneratedDocument, error)
}

// ClassificationFetcher reads a product's HSN code from the commerce platform.
// An empty code with a nil error means the product has none.
type ClassificationFetcher interface {
	FetchProductHSN(ctx context.Context, shop, productID string) (string, error)
}

// LocationResolver maps a warehouse/location to its province name.
type LocationResolver interface {
	LocationProvince(ctx context.Context, shop string, locationID int64) (string, error)
}

// HSNCache caches product classification codes per shop.
// found is true for cached negatives as well, with an empty code.
type HSNCache interface {
	Get(ctx context.Context, shop, productID string) (code string, found bool, err error)
	Set(ctx context.Context, shop, productID, code string, ttl time.Duration) error
}
