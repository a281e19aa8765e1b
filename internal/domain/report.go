package domain

import "time"

// ReportPeriod is a resolved, inclusive date range for a report.
type ReportPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// JurisdictionRateRow is one (place of supply, rate) bucket of the GSTR-1 style summary.
type JurisdictionRateRow struct {
	PlaceOfSupply string  `json:"place_of_supply"`
	StateCode     string  `json:"state_code"`
	TaxRate       float64 `json:"tax_rate"`
	EntryCount    int     `json:"entry_count"`
	TaxableValue  float64 `json:"taxable_value"`
	CGST          float64 `json:"cgst"`
	SGST          float64 `json:"sgst"`
	IGST          float64 `json:"igst"`
	TotalTax      float64 `json:"total_tax"`
}

// ClassificationRow is one HSN bucket of the HSN-wise summary.
type ClassificationRow struct {
	SerialNo     int     `json:"serial_no"`
	HSN          string  `json:"hsn"`
	Quantity     float64 `json:"quantity"`
	TaxableValue float64 `json:"taxable_value"`
	CGST         float64 `json:"cgst"`
	SGST         float64 `json:"sgst"`
	IGST         float64 `json:"igst"`
	TotalTax     float64 `json:"total_tax"`
}

// ReportTotals sums every included entry of a report.
type ReportTotals struct {
	Quantity     float64 `json:"quantity"`
	TaxableValue float64 `json:"taxable_value"`
	CGST         float64 `json:"cgst"`
	SGST         float64 `json:"sgst"`
	IGST         float64 `json:"igst"`
	TotalTax     float64 `json:"total_tax"`
}

// JurisdictionReport is the place-of-supply × rate view.
type JurisdictionReport struct {
	Rows   []JurisdictionRateRow `json:"rows"`
	Totals ReportTotals          `json:"totals"`
}

// ClassificationReport is the HSN-wise view.
type ClassificationReport struct {
	Rows   []ClassificationRow `json:"rows"`
	Totals ReportTotals        `json:"totals"`
}

// GSTReport bundles both views for a shop and period.
type GSTReport struct {
	Shop             string               `json:"shop"`
	Period           ReportPeriod         `json:"period"`
	EntryCount       int                  `json:"entry_count"`
	ByJurisdiction   JurisdictionReport   `json:"by_jurisdiction_and_rate"`
	ByClassification ClassificationReport `json:"by_classification"`
}
