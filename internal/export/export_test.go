package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gstsync/internal/domain"
)

func sampleReport() *domain.GSTReport {
	return &domain.GSTReport{
		Shop: "demo.myshop.com",
		Period: domain.ReportPeriod{
			Start: time.Date(2025, 4, 1, 0, 0, 0, 0, domain.ReportingZone),
			End:   time.Date(2025, 4, 30, 23, 59, 59, 0, domain.ReportingZone),
		},
		EntryCount: 2,
		ByJurisdiction: domain.JurisdictionReport{
			Rows: []domain.JurisdictionRateRow{
				{PlaceOfSupply: "Karnataka", StateCode: "29", TaxRate: 18, EntryCount: 1, TaxableValue: 300, CGST: 27, SGST: 27, TotalTax: 54},
				{PlaceOfSupply: "Maharashtra", StateCode: "27", TaxRate: 5, EntryCount: 1, TaxableValue: 1000, IGST: 50, TotalTax: 50},
			},
			Totals: domain.ReportTotals{Quantity: 4, TaxableValue: 1300, CGST: 27, SGST: 27, IGST: 50, TotalTax: 104},
		},
		ByClassification: domain.ClassificationReport{
			Rows: []domain.ClassificationRow{
				{SerialNo: 1, HSN: "6109", Quantity: 3, TaxableValue: 300, CGST: 27, SGST: 27, TotalTax: 54},
				{SerialNo: 2, HSN: "6205", Quantity: 1, TaxableValue: 1000, IGST: 50, TotalTax: 50},
			},
			Totals: domain.ReportTotals{Quantity: 4, TaxableValue: 1300, CGST: 27, SGST: 27, IGST: 50, TotalTax: 104},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleReport()))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, BOM))

	r := csv.NewReader(bytes.NewReader(data[len(BOM):]))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)

	// The blank separator line is skipped by csv.Reader.
	require.Len(t, rows, 10)
	assert.Equal(t, "Summary by Place of Supply and Rate", rows[0][0])
	assert.Equal(t, jurisdictionColumns, rows[1])
	assert.Equal(t, []string{"Karnataka", "29", "18%", "1", "300.00", "27.00", "27.00", "0.00", "54.00"}, rows[2])
	assert.Equal(t, "Total", rows[4][0])
	assert.Equal(t, "104.00", rows[4][8])
	assert.Equal(t, "HSN-wise Summary", rows[5][0])
	assert.Equal(t, []string{"1", "6109", "3", "300.00", "27.00", "27.00", "0.00", "54.00"}, rows[7])
	assert.Equal(t, []string{"Total", "", "4", "1300.00", "27.00", "27.00", "50.00", "104.00"}, rows[9])
}

func TestWriteCSV_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, &domain.GSTReport{}))

	r := csv.NewReader(bytes.NewReader(buf.Bytes()[len(BOM):]))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 6)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetJurisdiction, sheetClassification}, f.GetSheetList())

	v, err := f.GetCellValue(sheetJurisdiction, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Karnataka", v)

	v, err = f.GetCellValue(sheetJurisdiction, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Total", v)

	v, err = f.GetCellValue(sheetClassification, "B3")
	require.NoError(t, err)
	assert.Equal(t, "6205", v)

	v, err = f.GetCellValue(sheetClassification, "C4")
	require.NoError(t, err)
	assert.Equal(t, "4", v)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"demo.myshop.com", "demo_myshop_com"},
		{"a  b//c", "a_b_c"},
		{"__x__", "x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in))
	}
}

func TestBuildFilename(t *testing.T) {
	r := sampleReport()
	assert.Equal(t, "gst_demo_myshop_com_2025-04-01_2025-04-30.xlsx", BuildFilename(r.Shop, r.Period, "xlsx"))
}
