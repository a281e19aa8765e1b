package hsn

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"gstsync/internal/domain"
	"gstsync/internal/port"
)

// DefaultCacheTTL bounds how long a fetched code (or its absence) is retained.
const DefaultCacheTTL = 7 * 24 * time.Hour

// Resolver resolves classification codes for line items. The cache and the
// live fetcher are both optional.
type Resolver struct {
	cache   port.HSNCache
	fetcher port.ClassificationFetcher
	ttl     time.Duration
}

// NewResolver creates a Resolver. A nil fetcher disables live lookups; a nil
// cache disables caching.
func NewResolver(cache port.HSNCache, fetcher port.ClassificationFetcher, ttl time.Duration) *Resolver {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Resolver{cache: cache, fetcher: fetcher, ttl: ttl}
}

// Resolve returns the item's classification code and where it came from.
// The structured product field wins; when the payload does not carry it, the
// (shop, product) cache and live fetch stand in for it. Properties and SKU
// follow. Lookup failures never surface; they fall through to the next source.
func (r *Resolver) Resolve(ctx context.Context, shop string, item *domain.RawLineItem) (code, source string, ok bool) {
	if _, ok := FromMetafield(item); !ok {
		if code, source, ok := r.lookup(ctx, shop, item.ProductIDString()); ok {
			return code, source, true
		}
	}
	return Extract(item)
}

func (r *Resolver) lookup(ctx context.Context, shop, productID string) (code, source string, ok bool) {
	if productID == "" {
		return "", "", false
	}

	if r.cache != nil {
		cached, found, err := r.cache.Get(ctx, shop, productID)
		switch {
		case err != nil:
			log.Printf("hsnResolver.lookup: cache get failed for %s/%s: %v", shop, productID, err)
		case found:
			normalized, usable := Normalize(cached)
			return normalized, SourceCache, usable
		}
	}

	if r.fetcher == nil {
		return "", "", false
	}

	raw, err := r.fetcher.FetchProductHSN(ctx, shop, productID)
	if err != nil {
		log.Printf("hsnResolver.lookup: fetch failed for %s/%s: %v", shop, productID, err)
		return "", "", false
	}
	// An unusable value is cached as a miss so it is not fetched again.
	fetched, _ := Normalize(raw)

	if r.cache != nil {
		if err := r.cache.Set(ctx, shop, productID, fetched, r.ttl); err != nil {
			log.Printf("hsnResolver.lookup: cache set failed for %s/%s: %v", shop, productID, err)
		}
	}
	return fetched, SourceFetch, fetched != ""
}

// Enrich returns a copy of order whose line items carry their resolved code.
// The input order is not modified.
func (r *Resolver) Enrich(ctx context.Context, shop string, order *domain.RawOrder) *domain.RawOrder {
	out := *order
	out.LineItems = make([]domain.RawLineItem, len(order.LineItems))
	copy(out.LineItems, order.LineItems)

	for i := range out.LineItems {
		item := &out.LineItems[i]
		if code, source, ok := r.Resolve(ctx, shop, item); ok {
			item.HSN = code
			log.WithFields(log.Fields{
				"shop":   shop,
				"order":  order.Name,
				"item":   item.ID,
				"source": source,
			}).Debug("hsn resolved")
		} else {
			item.HSN = ""
		}
	}
	return &out
}
