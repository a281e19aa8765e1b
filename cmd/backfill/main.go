// Command backfill regenerates invoice documents for invoices whose first
// render failed, then exits.
// Usage: go run ./cmd/backfill [-batch N]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"

	"gstsync/internal/cache"
	"gstsync/internal/config"
	"gstsync/internal/docgen"
	"gstsync/internal/hsn"
	"gstsync/internal/logging"
	"gstsync/internal/platform"
	"gstsync/internal/port"
	"gstsync/internal/repository/postgres"
	"gstsync/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	batch := flag.Int("batch", 0, "maximum invoices to regenerate (defaults to GSTSYNC_BACKFILL_BATCH_SIZE)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logging.Setup(cfg.Log)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	shopRepo := postgres.NewShopRepo(db)

	redisClient := cache.NewRedisClient(&cfg.Redis)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}
	var fetcher port.ClassificationFetcher
	if cfg.HSN.LiveFetch {
		fetcher = platform.NewClient(shopRepo, &cfg.Platform, &cfg.HSN)
	}
	resolver := hsn.NewResolver(cache.NewHSNCache(redisClient), fetcher, cfg.HSN.CacheTTL)

	batchSize := cfg.Backfill.BatchSize
	if *batch > 0 {
		batchSize = *batch
	}

	backfiller := service.NewDocumentBackfiller(
		postgres.NewInvoiceRepo(db),
		postgres.NewOrderRepo(db),
		shopRepo,
		service.NewLedgerService(postgres.NewLedgerRepo(db)),
		resolver,
		docgen.NewClient(&cfg.DocGen),
		service.BackfillConfig{BatchSize: batchSize, IgnoreTaxLines: !cfg.Tax.UsePayloadRate},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	done, err := backfiller.RunOnce(ctx)
	if err != nil {
		return err
	}
	log.Infof("Backfill complete: %d documents regenerated", done)
	return nil
}
