package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gstsync/internal/domain"
	"gstsync/internal/export"
	"gstsync/internal/middleware"
	"gstsync/internal/service"
)

// Report output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ReportHandler handles report endpoints.
type ReportHandler struct {
	reportService service.ReportService
	now           func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, now: time.Now}
}

// parsePeriod reads either a named period or an explicit startDate/endDate pair.
func (h *ReportHandler) parsePeriod(c *gin.Context) (domain.ReportPeriod, error) {
	if preset := c.Query("period"); preset != "" {
		return service.ResolvePeriod(preset, h.now())
	}
	start, end := c.Query("startDate"), c.Query("endDate")
	if start == "" || end == "" {
		return domain.ReportPeriod{}, fmt.Errorf("%w: startDate and endDate, or period, are required", domain.ErrInvalidDateRange)
	}
	return service.ParseRange(start, end)
}

// GST handles GET /api/v1/reports/gst
// @Summary      GST summary report
// @Description  Aggregates ledger entries by place of supply and rate, and by HSN, for the period. Cancelled entries are excluded.
// @Tags         reports
// @Produce      json
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        shop query string true "Shop domain"
// @Param        startDate query string false "Start date (YYYY-MM-DD)"
// @Param        endDate query string false "End date (YYYY-MM-DD)"
// @Param        period query string false "Named period" Enums(monthly, quarterly, yearly, last-month, last-quarter)
// @Param        format query string false "Output format" Enums(json, csv, xlsx) default(json)
// @Success      200 {object} APIResponse{data=domain.GSTReport}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Security     BearerAuth
// @Router       /api/v1/reports/gst [get]
func (h *ReportHandler) GST(c *gin.Context) {
	shop, err := middleware.GetShop(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	format := c.DefaultQuery("format", FormatJSON)
	if format != FormatJSON && format != FormatCSV && format != FormatXLSX {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'format': must be one of json, csv, xlsx")
		return
	}

	period, err := h.parsePeriod(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	report, err := h.reportService.GSTReport(c.Request.Context(), shop, period)
	if err != nil {
		HandleError(c, err)
		return
	}

	switch format {
	case FormatCSV:
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, report); err != nil {
			HandleError(c, err)
			return
		}
		attachment(c, export.BuildFilename(shop, period, FormatCSV))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	case FormatXLSX:
		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, report); err != nil {
			HandleError(c, err)
			return
		}
		attachment(c, export.BuildFilename(shop, period, FormatXLSX))
		c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
	default:
		RespondOK(c, report)
	}
}

// Entries handles GET /api/v1/reports/entries
// @Summary      Ledger entries for a date range
// @Description  Returns every ledger entry, including cancelled ones, whose invoice or credit note date falls in the range.
// @Tags         reports
// @Produce      json
// @Param        shop query string true "Shop domain"
// @Param        startDate query string false "Start date (YYYY-MM-DD)"
// @Param        endDate query string false "End date (YYYY-MM-DD)"
// @Param        period query string false "Named period" Enums(monthly, quarterly, yearly, last-month, last-quarter)
// @Success      200 {object} APIResponse{data=[]domain.LedgerEntry}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Security     BearerAuth
// @Router       /api/v1/reports/entries [get]
func (h *ReportHandler) Entries(c *gin.Context) {
	shop, err := middleware.GetShop(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	period, err := h.parsePeriod(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	entries, err := h.reportService.QueryRange(c.Request.Context(), shop, period.Start, period.End)
	if err != nil {
		HandleError(c, err)
		return
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	RespondOK(c, entries)
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
}
