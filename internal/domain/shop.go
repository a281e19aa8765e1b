package domain

import "time"

// ShopSettings holds a merchant's GST profile and integration settings.
type ShopSettings struct {
	Shop            string    `db:"shop" json:"shop"`
	CompanyName     string    `db:"company_name" json:"company_name"`
	GSTIN           string    `db:"gstin" json:"gstin"`
	Address         string    `db:"address" json:"address"`
	State           string    `db:"state" json:"state"`
	PerWarehouseTax bool      `db:"per_warehouse_tax" json:"per_warehouse_tax"`
	AccessToken     string    `db:"access_token" json:"-"`
	InvoicePrefix   string    `db:"invoice_prefix" json:"invoice_prefix"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Company returns the seller block for invoices and ledger entries.
func (s *ShopSettings) Company() CompanyInfo {
	return CompanyInfo{
		Name:    s.CompanyName,
		GSTIN:   s.GSTIN,
		Address: s.Address,
		State:   s.State,
	}
}

// InvoiceID builds the deterministic invoice identifier for an order number.
func (s *ShopSettings) InvoiceID(orderNumber string) string {
	prefix := s.InvoicePrefix
	if prefix == "" {
		prefix = "INV"
	}
	return prefix + "-" + orderNumber
}
