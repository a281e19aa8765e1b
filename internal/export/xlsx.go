package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gstsync/internal/domain"
)

const (
	sheetJurisdiction   = "By Place of Supply"
	sheetClassification = "HSN Summary"
	defaultSheet        = "Sheet1"
)

// ContentTypeXLSX is the MIME type of the workbook written by WriteXLSX.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteXLSX writes both report views as sheets of one workbook.
func WriteXLSX(out io.Writer, report *domain.GSTReport) error {
	f, err := BuildWorkbook(report)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}
	return nil
}

// BuildWorkbook lays the report out in an in-memory workbook.
func BuildWorkbook(report *domain.GSTReport) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(defaultSheet, sheetJurisdiction); err != nil {
		return nil, fmt.Errorf("export.BuildWorkbook: %w", err)
	}
	if _, err := f.NewSheet(sheetClassification); err != nil {
		return nil, fmt.Errorf("export.BuildWorkbook: %w", err)
	}

	jur := make([][]any, 0, len(report.ByJurisdiction.Rows)+1)
	for i := range report.ByJurisdiction.Rows {
		r := &report.ByJurisdiction.Rows[i]
		jur = append(jur, []any{r.PlaceOfSupply, r.StateCode, r.TaxRate, r.EntryCount,
			r.TaxableValue, r.CGST, r.SGST, r.IGST, r.TotalTax})
	}
	jt := report.ByJurisdiction.Totals
	jur = append(jur, []any{"Total", "", "", "", jt.TaxableValue, jt.CGST, jt.SGST, jt.IGST, jt.TotalTax})
	if err := writeSheet(f, sheetJurisdiction, jurisdictionColumns, jur); err != nil {
		return nil, err
	}

	cls := make([][]any, 0, len(report.ByClassification.Rows)+1)
	for i := range report.ByClassification.Rows {
		r := &report.ByClassification.Rows[i]
		cls = append(cls, []any{r.SerialNo, r.HSN, r.Quantity,
			r.TaxableValue, r.CGST, r.SGST, r.IGST, r.TotalTax})
	}
	ct := report.ByClassification.Totals
	cls = append(cls, []any{"Total", "", ct.Quantity, ct.TaxableValue, ct.CGST, ct.SGST, ct.IGST, ct.TotalTax})
	if err := writeSheet(f, sheetClassification, classificationColumns, cls); err != nil {
		return nil, err
	}

	return f, nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any) error {
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("export.writeSheet %s: %w", sheet, err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export.writeSheet %s: %w", sheet, err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("export.writeSheet %s: %w", sheet, err)
		}
	}
	return nil
}
