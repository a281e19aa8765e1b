package handler_test

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gstsync/internal/domain"
	"gstsync/internal/export"
	"gstsync/internal/handler"
	"gstsync/internal/middleware"
	"gstsync/mocks"
)

func newReportContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, target, http.NoBody)
	c.Set(middleware.ContextKeyShop, testShop)
	return c, w
}

func sampleGSTReport(period domain.ReportPeriod) *domain.GSTReport {
	return &domain.GSTReport{
		Shop:       testShop,
		Period:     period,
		EntryCount: 1,
		ByJurisdiction: domain.JurisdictionReport{
			Rows:   []domain.JurisdictionRateRow{{PlaceOfSupply: "Karnataka", StateCode: "29", TaxRate: 18, EntryCount: 1, TaxableValue: 300, CGST: 27, SGST: 27, TotalTax: 54}},
			Totals: domain.ReportTotals{Quantity: 3, TaxableValue: 300, CGST: 27, SGST: 27, TotalTax: 54},
		},
		ByClassification: domain.ClassificationReport{
			Rows:   []domain.ClassificationRow{{SerialNo: 1, HSN: "6109", Quantity: 3, TaxableValue: 300, CGST: 27, SGST: 27, TotalTax: 54}},
			Totals: domain.ReportTotals{Quantity: 3, TaxableValue: 300, CGST: 27, SGST: 27, TotalTax: 54},
		},
	}
}

func aprilPeriod() domain.ReportPeriod {
	return domain.ReportPeriod{
		Start: time.Date(2025, 4, 1, 0, 0, 0, 0, domain.ReportingZone),
		End:   time.Date(2025, 4, 30, 0, 0, 0, 0, domain.ReportingZone),
	}
}

func matchPeriod(want domain.ReportPeriod) interface{} {
	return mock.MatchedBy(func(p domain.ReportPeriod) bool {
		return p.Start.Equal(want.Start) && p.End.Equal(want.End)
	})
}

func TestReportHandler_GST_JSON(t *testing.T) {
	svc := new(mocks.MockReportService)
	period := aprilPeriod()
	svc.On("GSTReport", mock.Anything, testShop, matchPeriod(period)).Return(sampleGSTReport(period), nil)

	c, w := newReportContext("/api/v1/reports/gst?shop=" + testShop + "&startDate=2025-04-01&endDate=2025-04-30")
	handler.NewReportHandler(svc).GST(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["entry_count"])
	svc.AssertExpectations(t)
}

func TestReportHandler_GST_CSV(t *testing.T) {
	svc := new(mocks.MockReportService)
	period := aprilPeriod()
	svc.On("GSTReport", mock.Anything, testShop, mock.Anything).Return(sampleGSTReport(period), nil)

	c, w := newReportContext("/api/v1/reports/gst?startDate=2025-04-01&endDate=2025-04-30&format=csv")
	handler.NewReportHandler(svc).GST(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="gst_demo_myshop_com_2025-04-01_2025-04-30.csv"`, w.Header().Get("Content-Disposition"))

	body := w.Body.Bytes()
	require.True(t, bytes.HasPrefix(body, export.BOM))
	r := csv.NewReader(bytes.NewReader(body[len(export.BOM):]))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "Karnataka", rows[2][0])
}

func TestReportHandler_GST_XLSX(t *testing.T) {
	svc := new(mocks.MockReportService)
	svc.On("GSTReport", mock.Anything, testShop, mock.Anything).Return(sampleGSTReport(aprilPeriod()), nil)

	c, w := newReportContext("/api/v1/reports/gst?startDate=2025-04-01&endDate=2025-04-30&format=xlsx")
	handler.NewReportHandler(svc).GST(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentTypeXLSX, w.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 2)
}

func TestReportHandler_GST_NamedPeriod(t *testing.T) {
	svc := new(mocks.MockReportService)
	svc.On("GSTReport", mock.Anything, testShop, mock.MatchedBy(func(p domain.ReportPeriod) bool {
		return p.Start.Day() == 1 && !p.End.Before(p.Start)
	})).Return(&domain.GSTReport{Shop: testShop}, nil)

	c, w := newReportContext("/api/v1/reports/gst?period=monthly")
	handler.NewReportHandler(svc).GST(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestReportHandler_GST_BadInput(t *testing.T) {
	tests := []struct {
		name   string
		target string
		code   string
	}{
		{"missing range", "/api/v1/reports/gst", "INVALID_DATE_RANGE"},
		{"bad date", "/api/v1/reports/gst?startDate=2025-13-01&endDate=2025-04-30", "INVALID_DATE_RANGE"},
		{"reversed", "/api/v1/reports/gst?startDate=2025-05-01&endDate=2025-04-30", "INVALID_DATE_RANGE"},
		{"unknown period", "/api/v1/reports/gst?period=fortnightly", "INVALID_DATE_RANGE"},
		{"bad format", "/api/v1/reports/gst?startDate=2025-04-01&endDate=2025-04-30&format=pdf", "INVALID_REQUEST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockReportService)
			c, w := newReportContext(tt.target)
			handler.NewReportHandler(svc).GST(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, decodeResponse(t, w).Error.Code)
			svc.AssertNotCalled(t, "GSTReport", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestReportHandler_GST_ServiceError(t *testing.T) {
	svc := new(mocks.MockReportService)
	svc.On("GSTReport", mock.Anything, testShop, mock.Anything).Return(nil, errors.New("db down"))

	c, w := newReportContext("/api/v1/reports/gst?startDate=2025-04-01&endDate=2025-04-30")
	handler.NewReportHandler(svc).GST(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestReportHandler_Entries(t *testing.T) {
	svc := new(mocks.MockReportService)
	period := aprilPeriod()
	svc.On("QueryRange", mock.Anything, testShop,
		mock.MatchedBy(period.Start.Equal), mock.MatchedBy(period.End.Equal)).Return(nil, nil)

	c, w := newReportContext("/api/v1/reports/entries?startDate=2025-04-01&endDate=2025-04-30")
	handler.NewReportHandler(svc).Entries(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, []interface{}{}, resp.Data)
}
