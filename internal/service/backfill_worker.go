package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"gstsync/internal/domain"
	"gstsync/internal/hsn"
	"gstsync/internal/port"
	"gstsync/internal/transform"
)

// BackfillConfig holds settings for the document backfill worker.
type BackfillConfig struct {
	PollInterval    time.Duration
	BatchSize       int
	Concurrency     int
	DocumentTimeout time.Duration
	IgnoreTaxLines  bool
}

// DocumentBackfiller regenerates invoice documents for records whose first
// generation attempt failed. The invoice document is rebuilt from the stored
// order snapshot, so the result matches what the webhook would have produced.
type DocumentBackfiller struct {
	invoices  port.InvoiceRepository
	orders    port.OrderRepository
	shops     port.ShopRepository
	ledger    LedgerService
	resolver  *hsn.Resolver
	documents port.DocumentGenerator
	cfg       BackfillConfig
	wg        sync.WaitGroup

	mu       sync.Mutex
	inflight map[string]bool
}

// NewDocumentBackfiller creates a new DocumentBackfiller.
func NewDocumentBackfiller(
	invoices port.InvoiceRepository,
	orders port.OrderRepository,
	shops port.ShopRepository,
	ledger LedgerService,
	resolver *hsn.Resolver,
	documents port.DocumentGenerator,
	cfg BackfillConfig,
) *DocumentBackfiller {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 2
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Minute
	}
	if cfg.DocumentTimeout <= 0 {
		cfg.DocumentTimeout = 30 * time.Second
	}
	if resolver == nil {
		resolver = hsn.NewResolver(nil, nil, 0)
	}
	return &DocumentBackfiller{
		invoices:  invoices,
		orders:    orders,
		shops:     shops,
		ledger:    ledger,
		resolver:  resolver,
		documents: documents,
		cfg:       cfg,
		inflight:  make(map[string]bool),
	}
}

// claim marks an invoice as in flight; it reports false if it already was.
func (b *DocumentBackfiller) claim(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.inflight[key] {
		return false
	}
	b.inflight[key] = true
	return true
}

func (b *DocumentBackfiller) release(key string) {
	b.mu.Lock()
	delete(b.inflight, key)
	b.mu.Unlock()
}

// RunOnce regenerates up to BatchSize missing documents sequentially and
// returns how many succeeded.
func (b *DocumentBackfiller) RunOnce(ctx context.Context) (int, error) {
	pending, err := b.invoices.ListMissingDocument(ctx, b.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("documentBackfiller.RunOnce: %w", err)
	}
	done := 0
	for i := range pending {
		if err := b.Regenerate(ctx, &pending[i]); err != nil {
			log.Printf("documentBackfiller.RunOnce: %s/%s: %v", pending[i].Shop, pending[i].OrderNumber, err)
			continue
		}
		done++
	}
	log.Printf("documentBackfiller.RunOnce: regenerated %d of %d documents", done, len(pending))
	return done, nil
}

// Regenerate rebuilds and renders the document for one invoice record.
func (b *DocumentBackfiller) Regenerate(ctx context.Context, inv *domain.InvoiceRecord) error {
	rec, err := b.orders.Get(ctx, inv.Shop, inv.OrderID)
	if err != nil {
		return fmt.Errorf("load order: %w", err)
	}
	if len(rec.Payload) == 0 {
		return fmt.Errorf("order %s has no stored payload", inv.OrderID)
	}
	var order domain.RawOrder
	if err := json.Unmarshal(rec.Payload, &order); err != nil {
		return fmt.Errorf("decode order %s: %w", inv.OrderID, err)
	}

	settings, err := b.shops.Get(ctx, inv.Shop)
	if err != nil {
		return fmt.Errorf("load shop: %w", err)
	}
	company := settings.Company()

	// The ledger remembers which jurisdiction the invoice was issued from.
	var jurisdiction string
	if entries, err := b.ledger.OrderEntries(ctx, inv.Shop, inv.OrderNumber); err == nil && len(entries) > 0 {
		if st := entries[0].CompanyState; st != "" && st != company.State {
			jurisdiction = st
		}
	}

	enriched := b.resolver.Enrich(ctx, inv.Shop, &order)
	res, err := transform.Transform(enriched, transform.Seller{
		Company:        company,
		Jurisdiction:   jurisdiction,
		InvoiceNumber:  inv.InvoiceID,
		IgnoreTaxLines: b.cfg.IgnoreTaxLines,
	})
	if err != nil {
		return err
	}

	genCtx, cancel := context.WithTimeout(ctx, b.cfg.DocumentTimeout)
	defer cancel()
	generated, err := b.documents.Generate(genCtx, inv.Shop, res.Document)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDocumentGeneration, err)
	}

	if generated == nil {
		return fmt.Errorf("%w: generator returned no document", domain.ErrDocumentGeneration)
	}

	status := inv.Status
	if generated.Delivered {
		status = domain.InvoiceStatusSent
	}
	return b.invoices.UpdateDocument(ctx, inv.Shop, inv.OrderID, generated, status)
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight regenerations have finished.
func (b *DocumentBackfiller) Start(ctx context.Context) {
	ticker := time.NewTicker(b.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, b.cfg.Concurrency)

	log.Printf("documentBackfiller: started (poll=%s, concurrency=%d, batch=%d)",
		b.cfg.PollInterval, b.cfg.Concurrency, b.cfg.BatchSize)

	for {
		select {
		case <-ctx.Done():
			log.Printf("documentBackfiller: shutting down, waiting for in-flight documents...")
			b.wg.Wait()
			log.Printf("documentBackfiller: shutdown complete")
			return
		case <-ticker.C:
			available := b.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}
			limit := available
			if limit > b.cfg.BatchSize {
				limit = b.cfg.BatchSize
			}

			pending, err := b.invoices.ListMissingDocument(ctx, limit)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("documentBackfiller: ListMissingDocument error: %v", err)
				continue
			}

			for i := range pending {
				inv := pending[i]
				key := inv.Shop + "/" + inv.OrderID
				if !b.claim(key) {
					continue
				}

				sem <- struct{}{}
				b.wg.Add(1)
				go func() {
					defer b.wg.Done()
					defer func() { <-sem }()
					defer b.release(key)

					// Detached from the poll context so in-flight work completes during shutdown.
					runCtx, cancel := context.WithTimeout(context.Background(), 2*b.cfg.DocumentTimeout)
					defer cancel()

					if err := b.Regenerate(runCtx, &inv); err != nil {
						log.Printf("documentBackfiller: %s/%s: %v", inv.Shop, inv.OrderNumber, err)
					}
				}()
			}
		}
	}
}
