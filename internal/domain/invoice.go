package domain

import "time"

// CompanyInfo describes the seller as it appears on invoices and in the ledger.
type CompanyInfo struct {
	Name    string `json:"name"`
	GSTIN   string `json:"gstin"`
	Address string `json:"address"`
	State   string `json:"state"`
}

// CustomerBlock is the buyer section of an invoice.
type CustomerBlock struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Billing  *Address `json:"billing,omitempty"`
	Shipping *Address `json:"shipping,omitempty"`
}

// InvoiceDocument is the display-oriented invoice handed to document rendering.
// It is recomputed from the RawOrder on every pipeline run.
type InvoiceDocument struct {
	InvoiceNumber     string          `json:"invoice_number"`
	InvoiceDate       time.Time       `json:"invoice_date"`
	OrderID           string          `json:"order_id"`
	OrderNumber       string          `json:"order_number"`
	Currency          string          `json:"currency"`
	Seller            CompanyInfo     `json:"seller"`
	Customer          CustomerBlock   `json:"customer"`
	PlaceOfSupply     string          `json:"place_of_supply"`
	PlaceOfSupplyCode string          `json:"place_of_supply_code"`
	TransactionType   TransactionType `json:"transaction_type"`
	Rows              []InvoiceRow    `json:"rows"`
	Totals            Totals          `json:"totals"`
}

// InvoiceRow is one physical unit of a line item; Quantity is always 1.
type InvoiceRow struct {
	LineIndex    int     `json:"line_index"`
	UnitIndex    int     `json:"unit_index"`
	Title        string  `json:"title"`
	SKU          string  `json:"sku"`
	HSN          string  `json:"hsn"`
	Quantity     int     `json:"quantity"`
	MRP          float64 `json:"mrp"`
	UnitPrice    float64 `json:"unit_price"`
	Discount     float64 `json:"discount"`
	BasePrice    float64 `json:"base_price"`
	TaxableValue float64 `json:"taxable_value"`
	TaxRate      float64 `json:"tax_rate"`
	Tax          float64 `json:"tax"`
	CGST         float64 `json:"cgst"`
	SGST         float64 `json:"sgst"`
	IGST         float64 `json:"igst"`
	Total        float64 `json:"total"`
}

// Totals are order-level sums derived from the invoice rows.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	Discount   float64 `json:"discount"`
	Shipping   float64 `json:"shipping"`
	Tax        float64 `json:"tax"`
	CGST       float64 `json:"cgst"`
	SGST       float64 `json:"sgst"`
	IGST       float64 `json:"igst"`
	GrandTotal float64 `json:"grand_total"`
}

// GSTLineItemMeta aggregates the expanded rows of one original line item.
// It is the only numeric source written to the ledger.
type GSTLineItemMeta struct {
	LineIndex    int     `json:"line_index"`
	LineItemID   int64   `json:"line_item_id"`
	ProductID    string  `json:"product_id"`
	Title        string  `json:"title"`
	HSN          string  `json:"hsn"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	Discount     float64 `json:"discount"`
	TaxableValue float64 `json:"taxable_value"`
	TaxRate      float64 `json:"tax_rate"`
	TotalTax     float64 `json:"total_tax"`
	CGST         float64 `json:"cgst"`
	SGST         float64 `json:"sgst"`
	IGST         float64 `json:"igst"`
}

// InvoiceRecord is the persisted, one-per-order invoice anchor.
type InvoiceRecord struct {
	Shop          string        `db:"shop" json:"shop"`
	OrderID       string        `db:"order_id" json:"order_id"`
	InvoiceID     string        `db:"invoice_id" json:"invoice_id"`
	OrderNumber   string        `db:"order_number" json:"order_number"`
	CustomerName  string        `db:"customer_name" json:"customer_name"`
	CustomerEmail string        `db:"customer_email" json:"customer_email"`
	DocumentRef   string        `db:"document_ref" json:"document_ref"`
	StorageKey    string        `db:"storage_key" json:"storage_key"`
	Total         float64       `db:"total" json:"total"`
	Status        InvoiceStatus `db:"status" json:"status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// GeneratedDocument is what the document renderer returns.
type GeneratedDocument struct {
	DocumentRef string `json:"document_ref"`
	StorageKey  string `json:"storage_key"`
	Delivered   bool   `json:"delivered"`
}

// OrderRecord is the merchant-facing order row kept for display and event correlation.
type OrderRecord struct {
	Shop            string             `db:"shop" json:"shop"`
	OrderID         string             `db:"order_id" json:"order_id"`
	OrderNumber     string             `db:"order_number" json:"order_number"`
	DisplayStatus   OrderDisplayStatus `db:"display_status" json:"display_status"`
	InvoiceID       *string            `db:"invoice_id" json:"invoice_id"`
	ExchangeOrderID *string            `db:"exchange_order_id" json:"exchange_order_id"`
	Payload         []byte             `db:"payload" json:"-"`
	UpdatedAt       time.Time          `db:"updated_at" json:"updated_at"`
}

// ProcessingRecord tracks how far the invoice pipeline got for an order.
type ProcessingRecord struct {
	Shop      string          `db:"shop"`
	OrderID   string          `db:"order_id"`
	State     ProcessingState `db:"state"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// WebhookAuditEntry is one processed webhook delivery.
type WebhookAuditEntry struct {
	ID        string    `db:"id" json:"id"`
	Shop      string    `db:"shop" json:"shop"`
	Topic     string    `db:"topic" json:"topic"`
	OrderID   string    `db:"order_id" json:"order_id"`
	Outcome   string    `db:"outcome" json:"outcome"`
	Detail    string    `db:"detail" json:"detail,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// InvoiceDetail is the merchant-facing view of one order's invoice.
type InvoiceDetail struct {
	Invoice       *InvoiceRecord      `json:"invoice"`
	DocumentURL   string              `json:"document_url,omitempty"`
	LedgerEntries []LedgerEntry       `json:"ledger_entries"`
	Deliveries    []WebhookAuditEntry `json:"deliveries"`
}
