// Command shop registers or updates a shop's GST profile and issues report
// access tokens.
// Usage:
//
//	go run ./cmd/shop register -shop demo.myshop.com -company "Demo Traders" -gstin 29ABCDE1234F1Z5 -state Karnataka
//	go run ./cmd/shop token -shop demo.myshop.com -ttl 720h
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"gstsync/internal/auth"
	"gstsync/internal/config"
	"gstsync/internal/domain"
	"gstsync/internal/gst"
	"gstsync/internal/repository/postgres"
)

const usage = "Usage: shop [register|token] [flags]"

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	switch os.Args[1] {
	case "register":
		err = register(cfg, os.Args[2:])
	case "token":
		err = issueToken(cfg, os.Args[2:])
	default:
		fmt.Printf("unknown command: %s\n%s\n", os.Args[1], usage)
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func register(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	shop := fs.String("shop", "", "shop domain (required)")
	company := fs.String("company", "", "legal company name")
	gstin := fs.String("gstin", "", "seller GSTIN")
	address := fs.String("address", "", "registered address")
	state := fs.String("state", "", "registered state (required)")
	token := fs.String("access-token", "", "platform Admin API access token")
	prefix := fs.String("invoice-prefix", "", "invoice number prefix (default INV)")
	perWarehouse := fs.Bool("per-warehouse", false, "tax each order from the warehouse that fulfilled it")
	_ = fs.Parse(args)

	if *shop == "" || *state == "" {
		return errors.New("-shop and -state are required")
	}
	if _, ok := gst.ResolveStateCode(*state); !ok {
		return fmt.Errorf("unknown state %q", *state)
	}
	if err := gst.ValidateGSTIN(*gstin, *state); err != nil {
		return err
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	settings := &domain.ShopSettings{
		Shop:            *shop,
		CompanyName:     *company,
		GSTIN:           strings.ToUpper(strings.TrimSpace(*gstin)),
		Address:         *address,
		State:           *state,
		PerWarehouseTax: *perWarehouse,
		AccessToken:     *token,
		InvoicePrefix:   *prefix,
	}
	if err := postgres.NewShopRepo(db).Upsert(context.Background(), settings); err != nil {
		return err
	}
	log.WithField("shop", *shop).Info("Shop registered")
	return nil
}

func issueToken(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	shop := fs.String("shop", "", "shop domain (required)")
	ttl := fs.Duration("ttl", 30*24*time.Hour, "token lifetime")
	_ = fs.Parse(args)

	if *shop == "" {
		return errors.New("-shop is required")
	}
	token, err := auth.NewTokenVerifier(&cfg.JWT).Issue(*shop, *ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
