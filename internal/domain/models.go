package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// RawOrder is the order payload delivered by the commerce platform. It is never
// mutated by the pipeline; enrichment produces copies.
type RawOrder struct {
	ID                int64          `json:"id"`
	Name              string         `json:"name"`
	CreatedAt         time.Time      `json:"created_at"`
	Currency          string         `json:"currency"`
	Email             string         `json:"email"`
	Phone             string         `json:"phone"`
	Customer          *Customer      `json:"customer,omitempty"`
	ShippingAddress   *Address       `json:"shipping_address,omitempty"`
	BillingAddress    *Address       `json:"billing_address,omitempty"`
	TotalDiscounts    Money          `json:"total_discounts"`
	ShippingLines     []ShippingLine `json:"shipping_lines"`
	LineItems         []RawLineItem  `json:"line_items"`
	FulfillmentStatus *string        `json:"fulfillment_status"`
	FinancialStatus   string         `json:"financial_status"`
	Fulfillments      []Fulfillment  `json:"fulfillments"`
	CancelledAt       *time.Time     `json:"cancelled_at"`
}

// Customer is the buyer attached to an order.
type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Address is a postal address on an order.
type Address struct {
	Name     string `json:"name"`
	Company  string `json:"company"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
	Phone    string `json:"phone"`
}

// ShippingLine is a shipping charge on an order.
type ShippingLine struct {
	Title string `json:"title"`
	Price Money  `json:"price"`
}

// Fulfillment records a shipment from a location.
type Fulfillment struct {
	ID         int64  `json:"id"`
	Status     string `json:"status"`
	LocationID *int64 `json:"location_id"`
}

// Property is a free-text name/value attached to a line item.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// TaxLine is a tax component the platform applied to a line item. Rate is a fraction (0.09).
type TaxLine struct {
	Title string  `json:"title"`
	Rate  float64 `json:"rate"`
	Price Money   `json:"price"`
}

// RawLineItem is one product line of a RawOrder.
type RawLineItem struct {
	ID                 int64      `json:"id"`
	ProductID          *int64     `json:"product_id"`
	VariantID          *int64     `json:"variant_id"`
	Title              string     `json:"title"`
	SKU                string     `json:"sku"`
	Price              Money      `json:"price"`
	Quantity           int        `json:"quantity"`
	TotalDiscount      Money      `json:"total_discount"`
	CompareAtPrice     *Money     `json:"compare_at_price,omitempty"`
	Properties         []Property `json:"properties"`
	HSNMetafield       *string    `json:"hsn_metafield,omitempty"`
	TaxLines           []TaxLine  `json:"tax_lines"`
	FulfillmentService string     `json:"fulfillment_service"`
	LocationID         *int64     `json:"origin_location_id"`

	// HSN is filled in by the classification resolver before transformation.
	HSN string `json:"-"`
}

// OrderID returns the platform order ID as a string key.
func (o *RawOrder) OrderID() string {
	return strconv.FormatInt(o.ID, 10)
}

// OrderNumber returns the display number without the leading '#'.
func (o *RawOrder) OrderNumber() string {
	return OrderNumberFromName(o.Name)
}

// OrderNumberFromName strips the '#' prefix platforms put on display names.
func OrderNumberFromName(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), "#")
}

// BuyerState returns the buyer's province, preferring the shipping address.
func (o *RawOrder) BuyerState() string {
	if o.ShippingAddress != nil && o.ShippingAddress.Province != "" {
		return o.ShippingAddress.Province
	}
	if o.BillingAddress != nil {
		return o.BillingAddress.Province
	}
	return ""
}

// CustomerName returns the best available buyer name.
func (o *RawOrder) CustomerName() string {
	if o.Customer != nil {
		if n := strings.TrimSpace(o.Customer.FirstName + " " + o.Customer.LastName); n != "" {
			return n
		}
	}
	if o.BillingAddress != nil && o.BillingAddress.Name != "" {
		return o.BillingAddress.Name
	}
	if o.ShippingAddress != nil {
		return o.ShippingAddress.Name
	}
	return ""
}

// CustomerEmail returns the order email, falling back to the customer record.
func (o *RawOrder) CustomerEmail() string {
	if o.Email != "" {
		return o.Email
	}
	if o.Customer != nil {
		return o.Customer.Email
	}
	return ""
}

// ShippingTotal sums all shipping line prices.
func (o *RawOrder) ShippingTotal() float64 {
	var total float64
	for i := range o.ShippingLines {
		total += o.ShippingLines[i].Price.Float64()
	}
	return total
}

// TotalQuantity sums the quantity of every line item.
func (o *RawOrder) TotalQuantity() int {
	n := 0
	for i := range o.LineItems {
		n += o.LineItems[i].Quantity
	}
	return n
}

// FulfillmentLocationID returns the location of the most recent fulfillment, if any.
func (o *RawOrder) FulfillmentLocationID() (int64, bool) {
	for i := len(o.Fulfillments) - 1; i >= 0; i-- {
		if loc := o.Fulfillments[i].LocationID; loc != nil {
			return *loc, true
		}
	}
	for i := range o.LineItems {
		if loc := o.LineItems[i].LocationID; loc != nil {
			return *loc, true
		}
	}
	return 0, false
}

// Validate checks the order once at the pipeline boundary.
func (o *RawOrder) Validate() error {
	if o.ID == 0 {
		return fmt.Errorf("%w: missing order id", ErrInvalidOrder)
	}
	if o.OrderNumber() == "" {
		return fmt.Errorf("%w: missing order name", ErrInvalidOrder)
	}
	if !validAmount(o.TotalDiscounts.Float64()) {
		return fmt.Errorf("%w: total_discounts must be a non-negative number", ErrInvalidOrder)
	}
	for i := range o.LineItems {
		item := &o.LineItems[i]
		if item.Quantity < 0 {
			return fmt.Errorf("%w: line_items[%d].quantity is negative", ErrInvalidOrder, i)
		}
		if !validAmount(item.Price.Float64()) {
			return fmt.Errorf("%w: line_items[%d].price must be a non-negative number", ErrInvalidOrder, i)
		}
		if !validAmount(item.TotalDiscount.Float64()) {
			return fmt.Errorf("%w: line_items[%d].total_discount must be a non-negative number", ErrInvalidOrder, i)
		}
	}
	return nil
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// ProductIDString returns the product ID as a string, or "" when absent.
func (li *RawLineItem) ProductIDString() string {
	if li.ProductID == nil {
		return ""
	}
	return strconv.FormatInt(*li.ProductID, 10)
}

// TaxRateHint returns the combined rate (percent) of the item's tax lines, if present.
// CGST 9% + SGST 9% and IGST 18% both yield 18.
func (li *RawLineItem) TaxRateHint() (float64, bool) {
	var rate float64
	for i := range li.TaxLines {
		rate += li.TaxLines[i].Rate
	}
	if rate <= 0 {
		return 0, false
	}
	return math.Round(rate*10000) / 100, true
}

// MRP returns the compare-at price, or the selling price when none is set.
func (li *RawLineItem) MRP() float64 {
	if li.CompareAtPrice != nil && li.CompareAtPrice.Float64() > 0 {
		return li.CompareAtPrice.Float64()
	}
	return li.Price.Float64()
}

// RawRefund is a refund/return event for an existing order.
type RawRefund struct {
	ID              int64            `json:"id"`
	OrderID         int64            `json:"order_id"`
	CreatedAt       time.Time        `json:"created_at"`
	Note            string           `json:"note"`
	RefundLineItems []RefundLineItem `json:"refund_line_items"`
	ExchangeOrderID *int64           `json:"exchange_order_id,omitempty"`
}

// RefundLineItem is the refunded quantity of one original line item.
type RefundLineItem struct {
	LineItemID int64 `json:"line_item_id"`
	Quantity   int   `json:"quantity"`
	IsExchange bool  `json:"is_exchange"`
}

// Validate checks the refund once at the pipeline boundary.
func (r *RawRefund) Validate() error {
	if r.ID == 0 {
		return fmt.Errorf("%w: missing refund id", ErrInvalidRefund)
	}
	if r.OrderID == 0 {
		return fmt.Errorf("%w: missing order id", ErrInvalidRefund)
	}
	for i := range r.RefundLineItems {
		if r.RefundLineItems[i].Quantity < 0 {
			return fmt.Errorf("%w: refund_line_items[%d].quantity is negative", ErrInvalidRefund, i)
		}
	}
	return nil
}

// HasExchange reports whether any refunded item is part of an exchange.
func (r *RawRefund) HasExchange() bool {
	for i := range r.RefundLineItems {
		if r.RefundLineItems[i].IsExchange {
			return true
		}
	}
	return false
}
