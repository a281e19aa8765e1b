package domain

import (
	"fmt"
	"time"
)

// LedgerBatchSize is the maximum number of entries persisted per batch write.
const LedgerBatchSize = 25

// LedgerEntry is one line-item-granular GST fact.
type LedgerEntry struct {
	Shop              string          `db:"shop" json:"shop"`
	EntryKey          string          `db:"entry_key" json:"entry_key"`
	OrderID           string          `db:"order_id" json:"order_id"`
	OrderNumber       string          `db:"order_number" json:"order_number"`
	InvoiceID         string          `db:"invoice_id" json:"invoice_id"`
	InvoiceDate       time.Time       `db:"invoice_date" json:"invoice_date"`
	Period            string          `db:"period" json:"period"`
	LineIndex         int             `db:"line_index" json:"line_index"`
	LineItemID        int64           `db:"line_item_id" json:"line_item_id"`
	ProductID         string          `db:"product_id" json:"product_id"`
	Title             string          `db:"title" json:"title"`
	HSN               string          `db:"hsn" json:"hsn"`
	Quantity          float64         `db:"quantity" json:"quantity"`
	CustomerState     string          `db:"customer_state" json:"customer_state"`
	CustomerStateCode string          `db:"customer_state_code" json:"customer_state_code"`
	CompanyState      string          `db:"company_state" json:"company_state"`
	CompanyStateCode  string          `db:"company_state_code" json:"company_state_code"`
	CompanyGSTIN      string          `db:"company_gstin" json:"company_gstin"`
	PlaceOfSupply     string          `db:"place_of_supply" json:"place_of_supply"`
	TransactionType   TransactionType `db:"transaction_type" json:"transaction_type"`
	TaxableValue      float64         `db:"taxable_value" json:"taxable_value"`
	TaxRate           float64         `db:"tax_rate" json:"tax_rate"`
	CGST              float64         `db:"cgst" json:"cgst"`
	SGST              float64         `db:"sgst" json:"sgst"`
	IGST              float64         `db:"igst" json:"igst"`
	TotalTax          float64         `db:"total_tax" json:"total_tax"`
	Status            LedgerStatus    `db:"status" json:"status"`
	CreditNoteID      *string         `db:"credit_note_id" json:"credit_note_id,omitempty"`
	CreditNoteDate    *time.Time      `db:"credit_note_date" json:"credit_note_date,omitempty"`
	OriginalEntryKey  *string         `db:"original_entry_key" json:"original_entry_key,omitempty"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// IsReversal reports whether the entry is a synthetic credit-note reversal.
func (e *LedgerEntry) IsReversal() bool {
	return e.OriginalEntryKey != nil
}

// EffectiveDate is the date the entry counts towards: the credit note date
// for reversals, the invoice date otherwise.
func (e *LedgerEntry) EffectiveDate() time.Time {
	if e.IsReversal() && e.CreditNoteDate != nil {
		return *e.CreditNoteDate
	}
	return e.InvoiceDate
}

// LedgerKey builds the composite sort key "<prefix>#NNN" for a 1-based line index.
func LedgerKey(prefix string, lineIndex int) string {
	return fmt.Sprintf("%s#%03d", prefix, lineIndex)
}

// LedgerKeyPrefix is the range-query prefix for all entries under an order or credit note.
func LedgerKeyPrefix(prefix string) string {
	return prefix + "#"
}

// ReportingZone is the zone dates are bucketed and filtered in.
var ReportingZone = time.FixedZone("IST", 5*60*60+30*60)

// PeriodOf returns the month bucket ("2006-01") used by the ledger range index.
func PeriodOf(t time.Time) string {
	return t.In(ReportingZone).Format("2006-01")
}

// OrderMeta is the order-level context for writing ledger entries.
type OrderMeta struct {
	OrderID       string
	OrderNumber   string
	InvoiceID     string
	InvoiceDate   time.Time
	CustomerState string
}

// CreditNoteInfo identifies the credit note behind a return or cancellation.
type CreditNoteInfo struct {
	ID   string
	Date time.Time
}

// ReturnedItem is a partial return of one original ledger line.
type ReturnedItem struct {
	LineIndex int
	Quantity  int
}

// CreditNoteID builds the deterministic credit note identifier for a refund.
func CreditNoteID(orderNumber string, refundID int64) string {
	return fmt.Sprintf("%s%d", CreditNotePrefix(orderNumber), refundID)
}

// CreditNotePrefix is the range-query prefix for every credit note raised
// against an order.
func CreditNotePrefix(orderNumber string) string {
	return "CN-" + orderNumber + "-"
}
