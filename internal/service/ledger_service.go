package service

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"gstsync/internal/domain"
	"gstsync/internal/gst"
	"gstsync/internal/port"
)

// LedgerService persists and reverses per-line-item GST facts.
type LedgerService interface {
	WriteOrderItems(ctx context.Context, shop string, meta domain.OrderMeta, items []domain.GSTLineItemMeta, company domain.CompanyInfo) ([]domain.LedgerEntry, error)
	UpdateStatus(ctx context.Context, shop, orderNumber string, status domain.LedgerStatus, creditNote *domain.CreditNoteInfo) (int, error)
	CreateReturnEntries(ctx context.Context, shop, orderNumber string, items []domain.ReturnedItem, creditNote domain.CreditNoteInfo) ([]domain.LedgerEntry, error)
	HasEntries(ctx context.Context, shop, orderNumber string) (bool, error)
	OrderEntries(ctx context.Context, shop, orderNumber string) ([]domain.LedgerEntry, error)
	ReversalEntries(ctx context.Context, shop, orderNumber string) ([]domain.LedgerEntry, error)
	AttachInvoice(ctx context.Context, shop, orderNumber, invoiceID string) error
}

type ledgerService struct {
	repo port.LedgerRepository
	now  func() time.Time
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(repo port.LedgerRepository) LedgerService {
	return &ledgerService{repo: repo, now: time.Now}
}

func (s *ledgerService) WriteOrderItems(ctx context.Context, shop string, meta domain.OrderMeta, items []domain.GSTLineItemMeta, company domain.CompanyInfo) ([]domain.LedgerEntry, error) {
	intrastate := gst.IsIntrastate(company.State, meta.CustomerState)
	customerCode := gst.StateCodeOrEmpty(meta.CustomerState)
	companyCode := gst.StateCodeOrEmpty(company.State)
	now := s.now().UTC()

	entries := make([]domain.LedgerEntry, 0, len(items))
	for i := range items {
		item := &items[i]
		entries = append(entries, domain.LedgerEntry{
			Shop:              shop,
			EntryKey:          domain.LedgerKey(meta.OrderNumber, item.LineIndex),
			OrderID:           meta.OrderID,
			OrderNumber:       meta.OrderNumber,
			InvoiceID:         meta.InvoiceID,
			InvoiceDate:       meta.InvoiceDate,
			Period:            domain.PeriodOf(meta.InvoiceDate),
			LineIndex:         item.LineIndex,
			LineItemID:        item.LineItemID,
			ProductID:         item.ProductID,
			Title:             item.Title,
			HSN:               item.HSN,
			Quantity:          float64(item.Quantity),
			CustomerState:     meta.CustomerState,
			CustomerStateCode: customerCode,
			CompanyState:      company.State,
			CompanyStateCode:  companyCode,
			CompanyGSTIN:      company.GSTIN,
			PlaceOfSupply:     meta.CustomerState,
			TransactionType:   gst.TransactionType(intrastate),
			TaxableValue:      item.TaxableValue,
			TaxRate:           item.TaxRate,
			CGST:              item.CGST,
			SGST:              item.SGST,
			IGST:              item.IGST,
			TotalTax:          item.TotalTax,
			Status:            domain.LedgerStatusActive,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}

	written, err := s.putBatches(ctx, entries)
	if err != nil {
		return entries[:written], fmt.Errorf("ledgerService.WriteOrderItems: order %s: %w", meta.OrderNumber, err)
	}
	log.Printf("ledgerService.WriteOrderItems: wrote %d entries for %s/%s", written, shop, meta.OrderNumber)
	return entries, nil
}

// putBatches writes entries in sequential chunks. There is no cross-batch
// atomicity: on failure it reports how many entries were already written.
func (s *ledgerService) putBatches(ctx context.Context, entries []domain.LedgerEntry) (int, error) {
	written := 0
	for start := 0; start < len(entries); start += domain.LedgerBatchSize {
		end := start + domain.LedgerBatchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := s.repo.PutBatch(ctx, entries[start:end]); err != nil {
			return written, fmt.Errorf("batch at %d (%d of %d written): %w", start, written, len(entries), err)
		}
		written = end
	}
	return written, nil
}

// UpdateStatus flips every original entry of the order. Cancellation also
// covers the order's credit-note reversals so both sides leave the reports
// together. A cancelled entry is never moved back to another status.
func (s *ledgerService) UpdateStatus(ctx context.Context, shop, orderNumber string, status domain.LedgerStatus, creditNote *domain.CreditNoteInfo) (int, error) {
	entries, err := s.repo.ListByKeyPrefix(ctx, shop, domain.LedgerKeyPrefix(orderNumber))
	if err != nil {
		return 0, fmt.Errorf("ledgerService.UpdateStatus: %w", err)
	}
	if status == domain.LedgerStatusCancelled {
		reversals, err := s.reversalsOf(ctx, shop, orderNumber)
		if err != nil {
			return 0, fmt.Errorf("ledgerService.UpdateStatus: %w", err)
		}
		entries = append(entries, reversals...)
	}

	var cnID *string
	var cnDate *time.Time
	if creditNote != nil {
		id, date := creditNote.ID, creditNote.Date
		cnID, cnDate = &id, &date
	}

	updated := 0
	for i := range entries {
		e := &entries[i]
		if e.Status == domain.LedgerStatusCancelled && status != domain.LedgerStatusCancelled {
			log.Printf("ledgerService.UpdateStatus: %s is cancelled, not moving it to %s", e.EntryKey, status)
			continue
		}
		if err := s.repo.UpdateStatus(ctx, shop, e.EntryKey, status, cnID, cnDate); err != nil {
			return updated, fmt.Errorf("ledgerService.UpdateStatus: entry %s: %w", e.EntryKey, err)
		}
		updated++
	}
	log.Printf("ledgerService.UpdateStatus: %s/%s -> %s (%d entries)", shop, orderNumber, status, updated)
	return updated, nil
}

// CreateReturnEntries writes one reversal per returned line under the credit
// note. Quantities are clamped to what earlier credit notes left on the line,
// and a reversal that exhausts the line takes the exact remainder so the
// line nets to zero.
func (s *ledgerService) CreateReturnEntries(ctx context.Context, shop, orderNumber string, items []domain.ReturnedItem, creditNote domain.CreditNoteInfo) ([]domain.LedgerEntry, error) {
	originals, err := s.repo.ListByKeyPrefix(ctx, shop, domain.LedgerKeyPrefix(orderNumber))
	if err != nil {
		return nil, fmt.Errorf("ledgerService.CreateReturnEntries: %w", err)
	}
	byLine := make(map[int]*domain.LedgerEntry, len(originals))
	for i := range originals {
		if !originals[i].IsReversal() {
			byLine[originals[i].LineIndex] = &originals[i]
		}
	}
	if len(byLine) == 0 {
		return nil, nil
	}

	earlier, err := s.reversalsOf(ctx, shop, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("ledgerService.CreateReturnEntries: %w", err)
	}
	prior := reversedTotals(earlier, creditNote.ID)

	now := s.now().UTC()
	reversals := make([]domain.LedgerEntry, 0, len(items))
	for _, item := range items {
		orig, ok := byLine[item.LineIndex]
		if !ok {
			log.Printf("ledgerService.CreateReturnEntries: %s/%s has no line %d, skipping", shop, orderNumber, item.LineIndex)
			continue
		}
		if item.Quantity <= 0 || orig.Quantity <= 0 {
			continue
		}
		done := prior[orig.EntryKey]
		remaining := orig.Quantity + done.Quantity
		if remaining <= 0 {
			log.Printf("ledgerService.CreateReturnEntries: %s line %d already fully returned", orderNumber, item.LineIndex)
			continue
		}
		qty := float64(item.Quantity)
		if qty > remaining {
			log.Printf("ledgerService.CreateReturnEntries: %s line %d returns %v of %v remaining, clamping", orderNumber, item.LineIndex, qty, remaining)
			qty = remaining
		}
		rev := reverseEntry(orig, qty/orig.Quantity, creditNote, now)
		if qty == remaining {
			rev.Quantity = -remaining
			rev.TaxableValue = -gst.Round2(orig.TaxableValue + done.TaxableValue)
			rev.CGST = -gst.Round2(orig.CGST + done.CGST)
			rev.SGST = -gst.Round2(orig.SGST + done.SGST)
			rev.IGST = -gst.Round2(orig.IGST + done.IGST)
			rev.TotalTax = -gst.Round2(orig.TotalTax + done.TotalTax)
		}
		reversals = append(reversals, rev)
	}
	if len(reversals) == 0 {
		return nil, nil
	}

	written, err := s.putBatches(ctx, reversals)
	if err != nil {
		return reversals[:written], fmt.Errorf("ledgerService.CreateReturnEntries: credit note %s: %w", creditNote.ID, err)
	}
	log.Printf("ledgerService.CreateReturnEntries: wrote %d reversal entries under %s", written, creditNote.ID)
	return reversals, nil
}

// reverseEntry builds the negative, proportionally scaled copy of orig.
// Reversals of a cancelled line are born cancelled.
func reverseEntry(orig *domain.LedgerEntry, scale float64, cn domain.CreditNoteInfo, now time.Time) domain.LedgerEntry {
	rev := *orig
	origKey := orig.EntryKey
	cnID, cnDate := cn.ID, cn.Date

	rev.EntryKey = domain.LedgerKey(cn.ID, orig.LineIndex)
	rev.Period = domain.PeriodOf(cn.Date)
	rev.Quantity = -gst.Round2(orig.Quantity * scale)
	rev.TaxableValue = -gst.Round2(orig.TaxableValue * scale)
	rev.CGST = -gst.Round2(orig.CGST * scale)
	rev.SGST = -gst.Round2(orig.SGST * scale)
	rev.IGST = -gst.Round2(orig.IGST * scale)
	rev.TotalTax = -gst.Round2(orig.TotalTax * scale)
	rev.Status = domain.LedgerStatusReturned
	if orig.Status == domain.LedgerStatusCancelled {
		rev.Status = domain.LedgerStatusCancelled
	}
	rev.CreditNoteID = &cnID
	rev.CreditNoteDate = &cnDate
	rev.OriginalEntryKey = &origKey
	rev.CreatedAt = now
	rev.UpdatedAt = now
	return rev
}

// reversedTotals sums the reversals per original entry key, leaving out the
// entries of skipCreditNote so a redelivered refund sees the same state.
// The sums are negative.
func reversedTotals(reversals []domain.LedgerEntry, skipCreditNote string) map[string]domain.LedgerEntry {
	totals := make(map[string]domain.LedgerEntry)
	for i := range reversals {
		r := &reversals[i]
		if r.OriginalEntryKey == nil || (r.CreditNoteID != nil && *r.CreditNoteID == skipCreditNote) {
			continue
		}
		t := totals[*r.OriginalEntryKey]
		t.Quantity += r.Quantity
		t.TaxableValue += r.TaxableValue
		t.CGST += r.CGST
		t.SGST += r.SGST
		t.IGST += r.IGST
		t.TotalTax += r.TotalTax
		totals[*r.OriginalEntryKey] = t
	}
	return totals
}

// reversalsOf lists every credit-note reversal written against the order.
func (s *ledgerService) reversalsOf(ctx context.Context, shop, orderNumber string) ([]domain.LedgerEntry, error) {
	entries, err := s.repo.ListByKeyPrefix(ctx, shop, domain.CreditNotePrefix(orderNumber))
	if err != nil {
		return nil, err
	}
	out := entries[:0]
	for i := range entries {
		if entries[i].IsReversal() && entries[i].OrderNumber == orderNumber {
			out = append(out, entries[i])
		}
	}
	return out, nil
}

func (s *ledgerService) ReversalEntries(ctx context.Context, shop, orderNumber string) ([]domain.LedgerEntry, error) {
	entries, err := s.reversalsOf(ctx, shop, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("ledgerService.ReversalEntries: %w", err)
	}
	return entries, nil
}

func (s *ledgerService) HasEntries(ctx context.Context, shop, orderNumber string) (bool, error) {
	n, err := s.repo.CountByKeyPrefix(ctx, shop, domain.LedgerKeyPrefix(orderNumber))
	if err != nil {
		return false, fmt.Errorf("ledgerService.HasEntries: %w", err)
	}
	return n > 0, nil
}

func (s *ledgerService) OrderEntries(ctx context.Context, shop, orderNumber string) ([]domain.LedgerEntry, error) {
	entries, err := s.repo.ListByKeyPrefix(ctx, shop, domain.LedgerKeyPrefix(orderNumber))
	if err != nil {
		return nil, fmt.Errorf("ledgerService.OrderEntries: %w", err)
	}
	return entries, nil
}

func (s *ledgerService) AttachInvoice(ctx context.Context, shop, orderNumber, invoiceID string) error {
	n, err := s.repo.SetInvoiceID(ctx, shop, domain.LedgerKeyPrefix(orderNumber), invoiceID)
	if err != nil {
		return fmt.Errorf("ledgerService.AttachInvoice: %w", err)
	}
	log.Printf("ledgerService.AttachInvoice: %s/%s -> %s (%d entries)", shop, orderNumber, invoiceID, n)
	return nil
}
