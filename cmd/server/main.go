package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"gstsync/internal/auth"
	"gstsync/internal/cache"
	"gstsync/internal/config"
	"gstsync/internal/docgen"
	noopemail "gstsync/internal/email/noop"
	sesemail "gstsync/internal/email/ses"
	"gstsync/internal/handler"
	"gstsync/internal/hsn"
	"gstsync/internal/logging"
	"gstsync/internal/platform"
	"gstsync/internal/port"
	"gstsync/internal/repository/postgres"
	"gstsync/internal/router"
	"gstsync/internal/service"
	s3storage "gstsync/internal/storage/s3"
)

// @title                      GST Sync API
// @version                    1.0
// @description                Turns commerce platform orders into GST invoices and a tax ledger, and reports on it.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Shop token: "Bearer {token}"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.Setup(cfg.Log)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	shopRepo := postgres.NewShopRepo(db)
	orderRepo := postgres.NewOrderRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	ledgerRepo := postgres.NewLedgerRepo(db)
	processingRepo := postgres.NewProcessingRepo(db)
	auditRepo := postgres.NewWebhookAuditRepo(db)

	// Initialize classification lookup
	redisClient := cache.NewRedisClient(&cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	}
	platformClient := platform.NewClient(shopRepo, &cfg.Platform, &cfg.HSN)
	var fetcher port.ClassificationFetcher
	if cfg.HSN.LiveFetch {
		fetcher = platformClient
	}
	resolver := hsn.NewResolver(cache.NewHSNCache(redisClient), fetcher, cfg.HSN.CacheTTL)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email
	var emailSender port.EmailSender
	switch strings.ToLower(cfg.Email.Provider) {
	case "ses":
		emailSender, err = sesemail.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noopemail.NewNoopSender()
	}

	documents := docgen.NewClient(&cfg.DocGen)

	// Initialize services
	ledgerSvc := service.NewLedgerService(ledgerRepo)
	reportSvc := service.NewReportService(ledgerRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, ledgerRepo, auditRepo, s3Client, cfg.S3.Bucket, cfg.S3.PresignExpiry)
	webhookSvc := service.NewWebhookService(service.WebhookDeps{
		Shops:      shopRepo,
		Orders:     orderRepo,
		Invoices:   invoiceRepo,
		Processing: processingRepo,
		Audits:     auditRepo,
		Ledger:     ledgerSvc,
		Resolver:   resolver,
		Documents:  documents,
		Locations:  platformClient,
		Storage:    s3Client,
		Email:      emailSender,
	}, service.WebhookConfig{
		Bucket:         cfg.S3.Bucket,
		PresignExpiry:  cfg.S3.PresignExpiry,
		SendEmail:      true,
		IgnoreTaxLines: !cfg.Tax.UsePayloadRate,
	})

	// Initialize handlers
	verifier := auth.NewTokenVerifier(&cfg.JWT)
	r := router.Setup(cfg, verifier, router.Handlers{
		Health:  handler.NewHealthHandler(db),
		Webhook: handler.NewWebhookHandler(webhookSvc),
		Report:  handler.NewReportHandler(reportSvc),
		Invoice: handler.NewInvoiceHandler(invoiceSvc),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backfillDone := make(chan struct{})
	if cfg.Backfill.Enabled {
		backfiller := service.NewDocumentBackfiller(invoiceRepo, orderRepo, shopRepo, ledgerSvc, resolver, documents, service.BackfillConfig{
			PollInterval:   time.Duration(cfg.Backfill.PollIntervalSecs) * time.Second,
			BatchSize:      cfg.Backfill.BatchSize,
			Concurrency:    cfg.Backfill.Concurrency,
			IgnoreTaxLines: !cfg.Tax.UsePayloadRate,
		})
		go func() {
			defer close(backfillDone)
			backfiller.Start(ctx)
		}()
	} else {
		close(backfillDone)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	<-backfillDone
	return nil
}
