// Package transform turns a raw order into an invoice document and the
// per-line-item GST facts written to the ledger.
//
// Transform is pure: it performs no I/O and always yields the same output for
// the same input, which is what makes pipeline retries safe. Classification
// codes must already be injected into the line items (see hsn.Resolver.Enrich).
package transform

import (
	"fmt"

	"gstsync/internal/domain"
	"gstsync/internal/gst"
)

// Rate bracket used when the payload carries no explicit tax rate. This is a
// two-slab approximation of the GST schedule and ignores the 12%, 28% and cess
// slabs.
const (
	LowerRate     = 5.0
	UpperRate     = 18.0
	RateThreshold = 2500.0
)

// Seller is the supplying side of the invoice.
type Seller struct {
	Company domain.CompanyInfo
	// Jurisdiction overrides Company.State as the origin of supply, e.g. the
	// fulfilling warehouse's province.
	Jurisdiction  string
	InvoiceNumber string
	// IgnoreTaxLines applies the rate bracket even when the payload's tax
	// lines carry a rate.
	IgnoreTaxLines bool
}

func (s Seller) origin() string {
	if s.Jurisdiction != "" {
		return s.Jurisdiction
	}
	return s.Company.State
}

// Result is the output of Transform.
type Result struct {
	Document *domain.InvoiceDocument
	Meta     []domain.GSTLineItemMeta
}

// InferRate applies the rate bracket to a tax-inclusive unit amount: the lower
// rate unless the base price under it reaches the threshold.
func InferRate(gross float64) float64 {
	if baseOf(gross, LowerRate) >= RateThreshold {
		return UpperRate
	}
	return LowerRate
}

func baseOf(gross, rate float64) float64 {
	return gross * 100 / (100 + rate)
}

// discountPool is the order-level discount not yet attributed to a line.
type discountPool float64

// draw attributes a discount to item and returns the pool left for the next
// line. A line whose approximate base price exceeds the remaining pool absorbs
// all of it; any other line keeps its own recorded discount.
func (p discountPool) draw(item *domain.RawLineItem) (float64, discountPool) {
	price := item.Price.Float64()
	if p > 0 && price/1.05 > float64(p) {
		return float64(p), 0
	}
	own := item.TotalDiscount.Float64()
	rest := float64(p) - own
	if rest < 0 {
		rest = 0
	}
	return own, discountPool(rest)
}

// Transform builds the invoice document and GST meta for order.
func Transform(order *domain.RawOrder, seller Seller) (*Result, error) {
	if err := order.Validate(); err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}

	buyerState := order.BuyerState()
	intrastate := gst.IsIntrastate(seller.origin(), buyerState)

	doc := &domain.InvoiceDocument{
		InvoiceNumber:     seller.InvoiceNumber,
		InvoiceDate:       order.CreatedAt,
		OrderID:           order.OrderID(),
		OrderNumber:       order.OrderNumber(),
		Currency:          order.Currency,
		Seller:            seller.Company,
		PlaceOfSupply:     buyerState,
		PlaceOfSupplyCode: gst.StateCodeOrEmpty(buyerState),
		TransactionType:   gst.TransactionType(intrastate),
		Customer: domain.CustomerBlock{
			Name:     order.CustomerName(),
			Email:    order.CustomerEmail(),
			Phone:    order.Phone,
			Billing:  order.BillingAddress,
			Shipping: order.ShippingAddress,
		},
	}
	if seller.Jurisdiction != "" {
		doc.Seller.State = seller.Jurisdiction
	}

	meta := make([]domain.GSTLineItemMeta, 0, len(order.LineItems))
	pool := discountPool(order.TotalDiscounts.Float64())

	for i := range order.LineItems {
		item := &order.LineItems[i]
		if item.Quantity == 0 {
			continue
		}
		var discount float64
		discount, pool = pool.draw(item)

		lineIndex := len(meta) + 1
		rows, m := expandLine(item, lineIndex, discount, intrastate, !seller.IgnoreTaxLines)
		doc.Rows = append(doc.Rows, rows...)
		meta = append(meta, m)
	}

	doc.Totals = sumRows(doc.Rows, order.ShippingTotal())
	return &Result{Document: doc, Meta: meta}, nil
}

// expandLine emits one row per unit. Only the first unit carries the line's
// discount. The meta sums the unrounded unit values and is rounded once.
func expandLine(item *domain.RawLineItem, lineIndex int, discount float64, intrastate, useHint bool) ([]domain.InvoiceRow, domain.GSTLineItemMeta) {
	price := item.Price.Float64()
	hint, hasHint := item.TaxRateHint()
	hasHint = hasHint && useHint

	rows := make([]domain.InvoiceRow, 0, item.Quantity)
	var taxable, tax, cgst, sgst, igst, firstRate float64

	for unit := 1; unit <= item.Quantity; unit++ {
		unitDiscount := 0.0
		if unit == 1 {
			unitDiscount = discount
		}
		gross := price - unitDiscount
		if gross < 0 {
			gross = 0
		}

		rate := hint
		if !hasHint {
			rate = InferRate(gross)
		}
		if unit == 1 {
			firstRate = rate
		}

		unitTaxable := baseOf(gross, rate)
		unitTax := gross - unitTaxable
		split := gst.SplitTax(unitTax, intrastate)

		taxable += unitTaxable
		tax += unitTax
		cgst += split.CGST
		sgst += split.SGST
		igst += split.IGST

		rows = append(rows, domain.InvoiceRow{
			LineIndex:    lineIndex,
			UnitIndex:    unit,
			Title:        item.Title,
			SKU:          item.SKU,
			HSN:          item.HSN,
			Quantity:     1,
			MRP:          gst.Round2(item.MRP()),
			UnitPrice:    gst.Round2(price),
			Discount:     gst.Round2(unitDiscount),
			BasePrice:    gst.Round2(baseOf(price, rate)),
			TaxableValue: gst.Round2(unitTaxable),
			TaxRate:      rate,
			Tax:          gst.Round2(unitTax),
			CGST:         gst.Round2(split.CGST),
			SGST:         gst.Round2(split.SGST),
			IGST:         gst.Round2(split.IGST),
			Total:        gst.Round2(gross),
		})
	}

	return rows, domain.GSTLineItemMeta{
		LineIndex:    lineIndex,
		LineItemID:   item.ID,
		ProductID:    item.ProductIDString(),
		Title:        item.Title,
		HSN:          item.HSN,
		Quantity:     item.Quantity,
		UnitPrice:    gst.Round2(price),
		Discount:     gst.Round2(discount),
		TaxableValue: gst.Round2(taxable),
		TaxRate:      firstRate,
		TotalTax:     gst.Round2(tax),
		CGST:         gst.Round2(cgst),
		SGST:         gst.Round2(sgst),
		IGST:         gst.Round2(igst),
	}
}

func sumRows(rows []domain.InvoiceRow, shipping float64) domain.Totals {
	var t domain.Totals
	for i := range rows {
		r := &rows[i]
		t.Subtotal += r.TaxableValue
		t.Discount += r.Discount
		t.Tax += r.Tax
		t.CGST += r.CGST
		t.SGST += r.SGST
		t.IGST += r.IGST
	}
	t.Shipping = shipping
	t.Subtotal = gst.Round2(t.Subtotal)
	t.Discount = gst.Round2(t.Discount)
	t.Tax = gst.Round2(t.Tax)
	t.CGST = gst.Round2(t.CGST)
	t.SGST = gst.Round2(t.SGST)
	t.IGST = gst.Round2(t.IGST)
	t.Shipping = gst.Round2(t.Shipping)
	t.GrandTotal = gst.Round2(t.Subtotal + t.Tax + t.Shipping)
	return t
}
