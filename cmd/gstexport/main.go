// Command gstexport writes a shop's GST summary report to a file or to S3.
// Usage:
//
//	go run ./cmd/gstexport -shop demo.myshop.com -period last-month -format xlsx
//	go run ./cmd/gstexport -shop demo.myshop.com -start 2025-04-01 -end 2025-06-30 -upload
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"gstsync/internal/config"
	"gstsync/internal/domain"
	"gstsync/internal/export"
	"gstsync/internal/logging"
	"gstsync/internal/port"
	"gstsync/internal/repository/postgres"
	"gstsync/internal/service"
	s3storage "gstsync/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	shop := flag.String("shop", "", "shop domain (required)")
	preset := flag.String("period", "", "named period: monthly, quarterly, yearly, last-month, last-quarter")
	start := flag.String("start", "", "start date (YYYY-MM-DD)")
	end := flag.String("end", "", "end date (YYYY-MM-DD)")
	format := flag.String("format", "csv", "output format: csv or xlsx")
	outDir := flag.String("out", ".", "directory to write the report into")
	upload := flag.Bool("upload", false, "upload to the configured S3 bucket instead of writing a file")
	flag.Parse()

	if *shop == "" {
		return fmt.Errorf("-shop is required")
	}
	if *format != "csv" && *format != "xlsx" {
		return fmt.Errorf("unsupported format %q", *format)
	}

	var (
		period domain.ReportPeriod
		err    error
	)
	if *preset != "" {
		period, err = service.ResolvePeriod(*preset, time.Now())
	} else {
		period, err = service.ParseRange(*start, *end)
	}
	if err != nil {
		return err
	}

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

	ctx := context.Background()
	report, err := service.NewReportService(postgres.NewLedgerRepo(db)).GSTReport(ctx, *shop, period)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	contentType := "text/csv; charset=utf-8"
	if *format == "xlsx" {
		contentType = export.ContentTypeXLSX
		err = export.WriteXLSX(&buf, report)
	} else {
		err = export.WriteCSV(&buf, report)
	}
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	filename := export.BuildFilename(*shop, period, *format)
	if !*upload {
		path := filepath.Join(*outDir, filename)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		log.WithFields(log.Fields{"shop": *shop, "entries": report.EntryCount}).Infof("Report written to %s", path)
		return nil
	}

	storage, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("initializing S3 client: %w", err)
	}
	key := fmt.Sprintf("reports/%s/%s", export.SanitizeFilename(*shop), filename)
	size := int64(buf.Len())
	out, err := storage.Upload(ctx, port.UploadInput{
		Bucket:      cfg.S3.Bucket,
		Key:         key,
		Body:        &buf,
		ContentType: contentType,
		Size:        size,
	})
	if err != nil {
		return fmt.Errorf("uploading report: %w", err)
	}
	url, err := storage.GetPresignedURL(ctx, cfg.S3.Bucket, key, cfg.S3.PresignExpiry)
	if err != nil {
		return fmt.Errorf("presigning report: %w", err)
	}
	log.WithFields(log.Fields{"shop": *shop, "entries": report.EntryCount, "location": out.Location}).Info("Report uploaded")
	fmt.Println(url)
	return nil
}
