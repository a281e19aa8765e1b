package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"gstsync/internal/domain"
	"gstsync/internal/hsn"
	"gstsync/internal/port"
	"gstsync/internal/transform"
)

// WebhookConfig holds settings for the webhook pipeline.
type WebhookConfig struct {
	Bucket          string
	DocumentTimeout time.Duration
	PresignExpiry   int64
	SendEmail       bool
	IgnoreTaxLines  bool
}

// WebhookDeps groups the collaborators of the webhook pipeline. Locations,
// Storage and Email may be nil.
type WebhookDeps struct {
	Shops      port.ShopRepository
	Orders     port.OrderRepository
	Invoices   port.InvoiceRepository
	Processing port.ProcessingStateRepository
	Audits     port.WebhookAuditRepository
	Ledger     LedgerService
	Resolver   *hsn.Resolver
	Documents  port.DocumentGenerator
	Locations  port.LocationResolver
	Storage    port.ObjectStorage
	Email      port.EmailSender
}

// WebhookService drives the order → invoice → ledger pipeline from inbound
// platform events. Every step is re-checkable so duplicate and concurrent
// deliveries converge on a single invoice and a single set of ledger entries.
type WebhookService interface {
	HandleOrderCreated(ctx context.Context, shop string, order *domain.RawOrder) (domain.PipelineOutcome, error)
	HandleOrderUpdated(ctx context.Context, shop string, order *domain.RawOrder) (domain.PipelineOutcome, error)
	HandleOrderCancelled(ctx context.Context, shop string, order *domain.RawOrder) (domain.PipelineOutcome, error)
	HandleRefundCreated(ctx context.Context, shop string, refund *domain.RawRefund) (domain.PipelineOutcome, error)
}

type webhookService struct {
	WebhookDeps
	cfg WebhookConfig
	now func() time.Time
}

// NewWebhookService creates a new WebhookService.
func NewWebhookService(deps WebhookDeps, cfg WebhookConfig) WebhookService {
	if deps.Resolver == nil {
		deps.Resolver = hsn.NewResolver(nil, nil, 0)
	}
	if cfg.DocumentTimeout <= 0 {
		cfg.DocumentTimeout = 30 * time.Second
	}
	if cfg.PresignExpiry <= 0 {
		cfg.PresignExpiry = 7 * 24 * 3600
	}
	return &webhookService{WebhookDeps: deps, cfg: cfg, now: time.Now}
}

func (s *webhookService) HandleOrderCreated(ctx context.Context, shop string, order *domain.RawOrder) (domain.PipelineOutcome, error) {
	if err := order.Validate(); err != nil {
		return "", err
	}
	settings, err := s.shopSettings(ctx, shop)
	if err != nil {
		return "", err
	}
	if err := s.saveOrder(ctx, shop, order, domain.DisplayAwaitingFulfillment); err != nil {
		return "", err
	}

	if settings.PerWarehouseTax {
		log.Printf("webhookService.HandleOrderCreated: %s/%s deferred until fulfillment", shop, order.Name)
		s.audit(ctx, shop, domain.TopicOrderCreated, order.OrderID(), domain.OutcomeDeferred, "per-warehouse tax")
		return domain.OutcomeDeferred, nil
	}

	outcome, err := s.createInvoice(ctx, shop, settings, order, "")
	if err != nil {
		s.audit(ctx, shop, domain.TopicOrderCreated, order.OrderID(), "failed", err.Error())
		return "", err
	}
	s.audit(ctx, shop, domain.TopicOrderCreated, order.OrderID(), outcome, "")
	return outcome, nil
}

// createInvoice runs the invoice pipeline for an order. jurisdiction, when set,
// replaces the company state as the origin of supply.
func (s *webhookService) createInvoice(ctx context.Context, shop string, settings *domain.ShopSettings, order *domain.RawOrder, jurisdiction string) (domain.PipelineOutcome, error) {
	orderID, orderNumber := order.OrderID(), order.OrderNumber()

	existing, err := s.Invoices.GetByOrderID(ctx, shop, orderID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("webhookService.createInvoice: %w", err)
	}
	if existing != nil {
		return s.resumeExisting(ctx, shop, settings, order, existing, jurisdiction)
	}

	s.setState(ctx, shop, orderID, domain.ProcessingPending)

	invoiceID := settings.InvoiceID(orderNumber)
	company := settings.Company()
	if jurisdiction != "" {
		company.State = jurisdiction
	}

	enriched := s.Resolver.Enrich(ctx, shop, order)
	res, err := transform.Transform(enriched, transform.Seller{
		Company:        company,
		Jurisdiction:   jurisdiction,
		InvoiceNumber:  invoiceID,
		IgnoreTaxLines: s.cfg.IgnoreTaxLines,
	})
	if err != nil {
		return "", fmt.Errorf("webhookService.createInvoice: %w: %w", domain.ErrTransformFailed, err)
	}

	ledgerOK := true
	meta := orderMeta(order, "")
	if _, err := s.Ledger.WriteOrderItems(ctx, shop, meta, res.Meta, company); err != nil {
		ledgerOK = false
		log.Printf("webhookService.createInvoice: ledger write incomplete for %s/%s: %v", shop, orderNumber, err)
	} else {
		s.setState(ctx, shop, orderID, domain.ProcessingLedgerWritten)
	}

	generated := s.generateDocument(ctx, shop, res.Document)
	if generated != nil {
		s.setState(ctx, shop, orderID, domain.ProcessingDocumentGenerated)
	}

	rec := &domain.InvoiceRecord{
		Shop:          shop,
		OrderID:       orderID,
		InvoiceID:     invoiceID,
		OrderNumber:   orderNumber,
		CustomerName:  order.CustomerName(),
		CustomerEmail: order.CustomerEmail(),
		Total:         res.Document.Totals.GrandTotal,
		Status:        domain.InvoiceStatusGenerated,
	}
	if generated != nil {
		rec.DocumentRef = generated.DocumentRef
		rec.StorageKey = generated.StorageKey
		if generated.Delivered {
			rec.Status = domain.InvoiceStatusSent
		}
	}

	created, err := s.Invoices.CreateIfAbsent(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("webhookService.createInvoice: %w", err)
	}
	if !created {
		log.Printf("webhookService.createInvoice: %s/%s lost the invoice race, treating as duplicate", shop, orderNumber)
		return domain.OutcomeDuplicate, nil
	}

	if err := s.Ledger.AttachInvoice(ctx, shop, orderNumber, invoiceID); err != nil {
		ledgerOK = false
		log.Printf("webhookService.createInvoice: %v", err)
	}
	if err := s.Orders.SetInvoiceID(ctx, shop, orderID, invoiceID); err != nil {
		log.Printf("webhookService.createInvoice: set invoice id on order %s: %v", orderID, err)
	}
	if err := s.Orders.UpdateDisplayStatus(ctx, shop, orderID, domain.DisplayInvoiced); err != nil {
		log.Printf("webhookService.createInvoice: display status for %s: %v", orderID, err)
	}

	if rec.Status == domain.InvoiceStatusGenerated && rec.StorageKey != "" {
		s.emailInvoice(ctx, settings, rec)
	}

	if ledgerOK {
		s.setState(ctx, shop, orderID, domain.ProcessingComplete)
	}
	log.Printf("webhookService.createInvoice: %s/%s invoiced as %s (%d lines)", shop, orderNumber, invoiceID, len(res.Meta))
	return domain.OutcomeCreated, nil
}

// resumeExisting handles a delivery for an order that already has an invoice.
// When the ledger is complete it is a true duplicate; otherwise the ledger is
// rewritten, which only fills in the missing keys.
func (s *webhookService) resumeExisting(ctx context.Context, shop string, settings *domain.ShopSettings, order *domain.RawOrder, inv *domain.InvoiceRecord, jurisdiction string) (domain.PipelineOutcome, error) {
	orderID, orderNumber := order.OrderID(), order.OrderNumber()

	hasLedger, err := s.Ledger.HasEntries(ctx, shop, orderNumber)
	if err != nil {
		return "", fmt.Errorf("webhookService.resumeExisting: %w", err)
	}
	state, err := s.Processing.Get(ctx, shop, orderID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		log.Printf("webhookService.resumeExisting: processing state for %s: %v", orderID, err)
	}
	if hasLedger && (state == nil || state.State == domain.ProcessingComplete) {
		log.Printf("webhookService.resumeExisting: %s/%s already processed", shop, orderNumber)
		return domain.OutcomeDuplicate, nil
	}

	company := settings.Company()
	if jurisdiction != "" {
		company.State = jurisdiction
	}
	enriched := s.Resolver.Enrich(ctx, shop, order)
	res, err := transform.Transform(enriched, transform.Seller{
		Company:        company,
		Jurisdiction:   jurisdiction,
		InvoiceNumber:  inv.InvoiceID,
		IgnoreTaxLines: s.cfg.IgnoreTaxLines,
	})
	if err != nil {
		return "", fmt.Errorf("webhookService.resumeExisting: %w: %w", domain.ErrTransformFailed, err)
	}

	if _, err := s.Ledger.WriteOrderItems(ctx, shop, orderMeta(order, inv.InvoiceID), res.Meta, company); err != nil {
		log.Printf("webhookService.resumeExisting: ledger still incomplete for %s/%s: %v", shop, orderNumber, err)
		return domain.OutcomeLedgerRecovered, nil
	}
	if err := s.Ledger.AttachInvoice(ctx, shop, orderNumber, inv.InvoiceID); err != nil {
		log.Printf("webhookService.resumeExisting: %v", err)
		return domain.OutcomeLedgerRecovered, nil
	}
	s.setState(ctx, shop, orderID, domain.ProcessingComplete)
	log.Printf("webhookService.resumeExisting: recovered ledger for %s/%s", shop, orderNumber)
	return domain.OutcomeLedgerRecovered, nil
}

func (s *webhookService) generateDocument(ctx context.Context, shop string, doc *domain.InvoiceDocument) *domain.GeneratedDocument {
	if s.Documents == nil {
		return nil
	}
	genCtx, cancel := context.WithTimeout(ctx, s.cfg.DocumentTimeout)
	defer cancel()

	generated, err := s.Documents.Generate(genCtx, shop, doc)
	if err != nil {
		log.Printf("webhookService.generateDocument: %s/%s: %v", shop, doc.OrderNumber, err)
		return nil
	}
	return generated
}

func (s *webhookService) emailInvoice(ctx context.Context, settings *domain.ShopSettings, rec *domain.InvoiceRecord) {
	if !s.cfg.SendEmail || s.Email == nil || s.Storage == nil || rec.CustomerEmail == "" {
		return
	}
	url, err := s.Storage.GetPresignedURL(ctx, s.cfg.Bucket, rec.StorageKey, s.cfg.PresignExpiry)
	if err != nil {
		log.Printf("webhookService.emailInvoice: presign %s: %v", rec.StorageKey, err)
		return
	}
	err = s.Email.SendInvoiceEmail(ctx, port.InvoiceEmail{
		ToEmail:       rec.CustomerEmail,
		ToName:        rec.CustomerName,
		CompanyName:   settings.CompanyName,
		InvoiceNumber: rec.InvoiceID,
		OrderNumber:   rec.OrderNumber,
		DocumentURL:   url,
	})
	if err != nil {
		log.Printf("webhookService.emailInvoice: %s: %v", rec.InvoiceID, err)
		return
	}
	if err := s.Invoices.UpdateStatus(ctx, rec.Shop, rec.OrderID, domain.InvoiceStatusSent); err != nil {
		log.Printf("webhookService.emailInvoice: mark sent %s: %v", rec.InvoiceID, err)
	}
}

func (s *webhookService) HandleOrderUpdated(ctx context.Context, shop string, order *domain.RawOrder) (domain.PipelineOutcome, error) {
	if err := order.Validate(); err != nil {
		return "", err
	}
	settings, err := s.shopSettings(ctx, shop)
	if err != nil {
		return "", err
	}
	orderID := order.OrderID()

	if err := s.saveOrder(ctx, shop, order, domain.DisplayAwaitingFulfillment); err != nil {
		return "", err
	}

	outcome := domain.OutcomeUpdated
	if settings.PerWarehouseTax && isFulfilled(order) {
		_, err := s.Invoices.GetByOrderID(ctx, shop, orderID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			jurisdiction := s.warehouseJurisdiction(ctx, shop, order, settings)
			outcome, err = s.createInvoice(ctx, shop, settings, order, jurisdiction)
			if err != nil {
				s.audit(ctx, shop, domain.TopicOrderUpdated, orderID, "failed", err.Error())
				return "", err
			}
		case err != nil:
			return "", fmt.Errorf("webhookService.HandleOrderUpdated: %w", err)
		}
	}

	if status, ok := DisplayStatusFor(order); ok {
		if err := s.Orders.UpdateDisplayStatus(ctx, shop, orderID, status); err != nil {
			return "", fmt.Errorf("webhookService.HandleOrderUpdated: %w", err)
		}
	}

	s.audit(ctx, shop, domain.TopicOrderUpdated, orderID, outcome, "")
	return outcome, nil
}

// DisplayStatusFor maps an order's payment and fulfillment state to the
// merchant-facing status. Refunds take precedence over fulfillment.
func DisplayStatusFor(order *domain.RawOrder) (domain.OrderDisplayStatus, bool) {
	switch order.FinancialStatus {
	case domain.FinancialRefunded:
		return domain.DisplayReturned, true
	case domain.FinancialPartRefund:
		return domain.DisplayPartiallyReturned, true
	}
	if order.FulfillmentStatus == nil {
		return "", false
	}
	switch *order.FulfillmentStatus {
	case domain.FulfillmentFulfilled:
		return domain.DisplayFulfilled, true
	case domain.FulfillmentPartial:
		return domain.DisplayPartiallyFulfilled, true
	}
	return "", false
}

func isFulfilled(order *domain.RawOrder) bool {
	if order.FulfillmentStatus == nil {
		return false
	}
	fs := *order.FulfillmentStatus
	return fs == domain.FulfillmentFulfilled || fs == domain.FulfillmentPartial
}

// warehouseJurisdiction returns the province of the fulfilling location, or
// the company state when it cannot be determined.
func (s *webhookService) warehouseJurisdiction(ctx context.Context, shop string, order *domain.RawOrder, settings *domain.ShopSettings) string {
	locationID, ok := order.FulfillmentLocationID()
	if !ok || s.Locations == nil {
		return settings.State
	}
	province, err := s.Locations.LocationProvince(ctx, shop, locationID)
	if err != nil {
		log.Printf("webhookService.warehouseJurisdiction: location %d for %s: %v", locationID, shop, err)
		return settings.State
	}
	if province == "" {
		return settings.State
	}
	return province
}

func (s *webhookService) HandleOrderCancelled(ctx context.Context, shop string, order *domain.RawOrder) (domain.PipelineOutcome, error) {
	if err := order.Validate(); err != nil {
		return "", err
	}
	orderID, orderNumber := order.OrderID(), order.OrderNumber()

	if err := s.saveOrder(ctx, shop, order, domain.DisplayCancelled); err != nil {
		return "", err
	}
	if err := s.Orders.UpdateDisplayStatus(ctx, shop, orderID, domain.DisplayCancelled); err != nil {
		return "", fmt.Errorf("webhookService.HandleOrderCancelled: %w", err)
	}
	if _, err := s.Ledger.UpdateStatus(ctx, shop, orderNumber, domain.LedgerStatusCancelled, nil); err != nil {
		return "", fmt.Errorf("webhookService.HandleOrderCancelled: %w", err)
	}

	s.relocateDocument(ctx, shop, orderID, domain.AreaCancelled)
	s.audit(ctx, shop, domain.TopicOrderCancelled, orderID, domain.OutcomeCancelled, "")
	return domain.OutcomeCancelled, nil
}

func (s *webhookService) HandleRefundCreated(ctx context.Context, shop string, refund *domain.RawRefund) (domain.PipelineOutcome, error) {
	if err := refund.Validate(); err != nil {
		return "", err
	}
	orderID := strconv.FormatInt(refund.OrderID, 10)

	rec, err := s.Orders.Get(ctx, shop, orderID)
	if errors.Is(err, domain.ErrNotFound) {
		log.Printf("webhookService.HandleRefundCreated: unknown order %s/%s", shop, orderID)
		s.audit(ctx, shop, domain.TopicRefundCreated, orderID, domain.OutcomeIgnored, "unknown order")
		return domain.OutcomeIgnored, nil
	}
	if err != nil {
		return "", fmt.Errorf("webhookService.HandleRefundCreated: %w", err)
	}

	entries, err := s.Ledger.OrderEntries(ctx, shop, rec.OrderNumber)
	if err != nil {
		return "", fmt.Errorf("webhookService.HandleRefundCreated: %w", err)
	}

	earlier, err := s.Ledger.ReversalEntries(ctx, shop, rec.OrderNumber)
	if err != nil {
		return "", fmt.Errorf("webhookService.HandleRefundCreated: %w", err)
	}
	creditNoteID := domain.CreditNoteID(rec.OrderNumber, refund.ID)

	returned, full := matchRefund(entries, earlier, refund, creditNoteID)
	if len(returned) == 0 {
		s.audit(ctx, shop, domain.TopicRefundCreated, orderID, domain.OutcomeIgnored, "no ledger lines refunded")
		return domain.OutcomeIgnored, nil
	}

	cnDate := refund.CreatedAt
	if cnDate.IsZero() {
		cnDate = s.now().UTC()
	}
	creditNote := domain.CreditNoteInfo{ID: creditNoteID, Date: cnDate}

	if _, err := s.Ledger.CreateReturnEntries(ctx, shop, rec.OrderNumber, returned, creditNote); err != nil {
		return "", fmt.Errorf("webhookService.HandleRefundCreated: %w", err)
	}
	outcome, display := domain.OutcomePartiallyReturned, domain.DisplayPartiallyReturned
	if full {
		if _, err := s.Ledger.UpdateStatus(ctx, shop, rec.OrderNumber, domain.LedgerStatusReturned, &creditNote); err != nil {
			return "", fmt.Errorf("webhookService.HandleRefundCreated: %w", err)
		}
		outcome, display = domain.OutcomeReturned, domain.DisplayReturned
	}

	if refund.HasExchange() && refund.ExchangeOrderID != nil {
		exchangeID := strconv.FormatInt(*refund.ExchangeOrderID, 10)
		if err := s.Orders.SetExchangeOrder(ctx, shop, orderID, exchangeID); err != nil {
			log.Printf("webhookService.HandleRefundCreated: exchange link %s -> %s: %v", orderID, exchangeID, err)
		}
	}
	if err := s.Orders.UpdateDisplayStatus(ctx, shop, orderID, display); err != nil {
		log.Printf("webhookService.HandleRefundCreated: display status for %s: %v", orderID, err)
	}
	if full {
		s.relocateDocument(ctx, shop, orderID, domain.AreaReturned)
	}

	s.audit(ctx, shop, domain.TopicRefundCreated, orderID, outcome, creditNote.ID)
	return outcome, nil
}

// matchRefund maps refunded line items onto the order's ledger lines,
// clamped to what earlier credit notes left on each line. The refund is full
// when nothing is left on any line once it is applied. Reversals already
// written under creditNoteID are ignored so a redelivery matches the same way.
func matchRefund(entries, earlier []domain.LedgerEntry, refund *domain.RawRefund, creditNoteID string) ([]domain.ReturnedItem, bool) {
	refunded := make(map[int64]int)
	for _, rli := range refund.RefundLineItems {
		refunded[rli.LineItemID] += rli.Quantity
	}
	prior := reversedTotals(earlier, creditNoteID)

	var items []domain.ReturnedItem
	var remainingQty, returnedQty float64
	for i := range entries {
		e := &entries[i]
		if e.IsReversal() {
			continue
		}
		remaining := e.Quantity + prior[e.EntryKey].Quantity
		if remaining <= 0 {
			continue
		}
		remainingQty += remaining
		q := refunded[e.LineItemID]
		if q <= 0 {
			continue
		}
		if float64(q) > remaining {
			q = int(remaining)
		}
		returnedQty += float64(q)
		items = append(items, domain.ReturnedItem{LineIndex: e.LineIndex, Quantity: q})
	}
	return items, len(items) > 0 && returnedQty >= remainingQty
}

// relocateDocument moves the order's rendered document to another storage
// area. Failures are logged and never surface.
func (s *webhookService) relocateDocument(ctx context.Context, shop, orderID string, area domain.StorageArea) {
	if s.Storage == nil {
		return
	}
	inv, err := s.Invoices.GetByOrderID(ctx, shop, orderID)
	if err != nil || inv.StorageKey == "" {
		return
	}
	dst := RelocatedKey(inv.StorageKey, area)
	if dst == inv.StorageKey {
		return
	}
	if err := s.Storage.Move(ctx, s.cfg.Bucket, inv.StorageKey, dst); err != nil {
		log.Printf("webhookService.relocateDocument: %s -> %s: %v", inv.StorageKey, dst, err)
		return
	}
	doc := &domain.GeneratedDocument{DocumentRef: inv.DocumentRef, StorageKey: dst}
	if err := s.Invoices.UpdateDocument(ctx, shop, orderID, doc, inv.Status); err != nil {
		log.Printf("webhookService.relocateDocument: record new key for %s: %v", orderID, err)
	}
}

// RelocatedKey swaps the leading storage area of key for area.
func RelocatedKey(key string, area domain.StorageArea) string {
	for _, a := range []domain.StorageArea{domain.AreaActive, domain.AreaCancelled, domain.AreaReturned} {
		if rest, ok := strings.CutPrefix(key, string(a)+"/"); ok {
			return path.Join(string(area), rest)
		}
	}
	return path.Join(string(area), key)
}

func orderMeta(order *domain.RawOrder, invoiceID string) domain.OrderMeta {
	return domain.OrderMeta{
		OrderID:       order.OrderID(),
		OrderNumber:   order.OrderNumber(),
		InvoiceID:     invoiceID,
		InvoiceDate:   order.CreatedAt,
		CustomerState: order.BuyerState(),
	}
}

func (s *webhookService) shopSettings(ctx context.Context, shop string) (*domain.ShopSettings, error) {
	settings, err := s.Shops.Get(ctx, shop)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrShopNotConfigured, shop)
	}
	if err != nil {
		return nil, fmt.Errorf("webhookService.shopSettings: %w", err)
	}
	return settings, nil
}

// saveOrder stores the order snapshot. status applies only when the record is
// first created.
func (s *webhookService) saveOrder(ctx context.Context, shop string, order *domain.RawOrder, status domain.OrderDisplayStatus) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("webhookService.saveOrder: %w", err)
	}
	rec := &domain.OrderRecord{
		Shop:          shop,
		OrderID:       order.OrderID(),
		OrderNumber:   order.OrderNumber(),
		DisplayStatus: status,
		Payload:       payload,
	}
	if err := s.Orders.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("webhookService.saveOrder: %w", err)
	}
	return nil
}

func (s *webhookService) setState(ctx context.Context, shop, orderID string, state domain.ProcessingState) {
	if err := s.Processing.Set(ctx, shop, orderID, state); err != nil {
		log.Printf("webhookService.setState: %s/%s -> %s: %v", shop, orderID, state, err)
	}
}

// audit records the delivery. Audit failures never abort a flow.
func (s *webhookService) audit(ctx context.Context, shop string, topic domain.WebhookTopic, orderID string, outcome domain.PipelineOutcome, detail string) {
	if s.Audits == nil {
		return
	}
	entry := &domain.WebhookAuditEntry{
		ID:        uuid.New().String(),
		Shop:      shop,
		Topic:     string(topic),
		OrderID:   orderID,
		Outcome:   string(outcome),
		Detail:    detail,
		CreatedAt: s.now().UTC(),
	}
	if err := s.Audits.Create(ctx, entry); err != nil {
		log.Printf("webhookService.audit: %v", err)
	}
}
