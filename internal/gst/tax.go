package gst

import (
	"github.com/shopspring/decimal"

	"gstsync/internal/domain"
)

// TaxSplit is a tax amount divided into its GST components.
type TaxSplit struct {
	CGST float64
	SGST float64
	IGST float64
}

// SplitTax halves an intrastate amount into CGST and SGST, or puts an interstate
// amount entirely into IGST. The result is not rounded.
func SplitTax(amount float64, intrastate bool) TaxSplit {
	if intrastate {
		half := amount / 2
		return TaxSplit{CGST: half, SGST: half}
	}
	return TaxSplit{IGST: amount}
}

// TransactionType maps the intrastate flag to the ledger's transaction type.
func TransactionType(intrastate bool) domain.TransactionType {
	if intrastate {
		return domain.TransactionIntrastate
	}
	return domain.TransactionInterstate
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
