// Package export renders GST reports as CSV and XLSX files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gstsync/internal/domain"
)

// BOM is the UTF-8 byte order mark, written first so Excel on Windows reads the CSV as UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var jurisdictionColumns = []string{
	"Place of Supply",
	"State Code",
	"Rate",
	"Entries",
	"Taxable Value",
	"CGST",
	"SGST",
	"IGST",
	"Total Tax",
}

var classificationColumns = []string{
	"Sr. No.",
	"HSN",
	"Quantity",
	"Taxable Value",
	"CGST",
	"SGST",
	"IGST",
	"Total Tax",
}

// Writer wraps csv.Writer for exporting a GST report.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteJurisdiction writes the place-of-supply × rate section with its header and a totals row.
func (w *Writer) WriteJurisdiction(r *domain.JurisdictionReport) error {
	if err := w.csv.Write(jurisdictionColumns); err != nil {
		return err
	}
	for i := range r.Rows {
		if err := w.csv.Write(jurisdictionRow(&r.Rows[i])); err != nil {
			return err
		}
	}
	t := r.Totals
	return w.csv.Write([]string{
		"Total", "", "", "",
		formatMoney(t.TaxableValue), formatMoney(t.CGST), formatMoney(t.SGST), formatMoney(t.IGST), formatMoney(t.TotalTax),
	})
}

// WriteClassification writes the HSN-wise section with its header and a totals row.
func (w *Writer) WriteClassification(r *domain.ClassificationReport) error {
	if err := w.csv.Write(classificationColumns); err != nil {
		return err
	}
	for i := range r.Rows {
		if err := w.csv.Write(classificationRow(&r.Rows[i])); err != nil {
			return err
		}
	}
	t := r.Totals
	return w.csv.Write([]string{
		"Total", "", formatQty(t.Quantity),
		formatMoney(t.TaxableValue), formatMoney(t.CGST), formatMoney(t.SGST), formatMoney(t.IGST), formatMoney(t.TotalTax),
	})
}

// WriteTitle writes a single-cell section title.
func (w *Writer) WriteTitle(title string) error {
	return w.csv.Write([]string{title})
}

// WriteBlank writes an empty separator row.
func (w *Writer) WriteBlank() error {
	return w.csv.Write([]string{""})
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes both report views, separated by a blank row, preceded by a BOM.
func WriteCSV(out io.Writer, report *domain.GSTReport) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out)
	steps := []func() error{
		func() error { return w.WriteTitle("Summary by Place of Supply and Rate") },
		func() error { return w.WriteJurisdiction(&report.ByJurisdiction) },
		w.WriteBlank,
		func() error { return w.WriteTitle("HSN-wise Summary") },
		func() error { return w.WriteClassification(&report.ByClassification) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("export.WriteCSV: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func jurisdictionRow(r *domain.JurisdictionRateRow) []string {
	return []string{
		r.PlaceOfSupply,
		r.StateCode,
		formatRate(r.TaxRate),
		strconv.Itoa(r.EntryCount),
		formatMoney(r.TaxableValue),
		formatMoney(r.CGST),
		formatMoney(r.SGST),
		formatMoney(r.IGST),
		formatMoney(r.TotalTax),
	}
}

func classificationRow(r *domain.ClassificationRow) []string {
	return []string{
		strconv.Itoa(r.SerialNo),
		r.HSN,
		formatQty(r.Quantity),
		formatMoney(r.TaxableValue),
		formatMoney(r.CGST),
		formatMoney(r.SGST),
		formatMoney(r.IGST),
		formatMoney(r.TotalTax),
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces non-alphanumeric chars (except - _) with _,
// collapses consecutive underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns "gst_{shop}_{start}_{end}.{ext}" for Content-Disposition and uploads.
func BuildFilename(shop string, period domain.ReportPeriod, ext string) string {
	return fmt.Sprintf("gst_%s_%s_%s.%s",
		SanitizeFilename(shop),
		period.Start.In(domain.ReportingZone).Format("2006-01-02"),
		period.End.In(domain.ReportingZone).Format("2006-01-02"),
		ext)
}
