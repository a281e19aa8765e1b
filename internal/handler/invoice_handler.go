package handler

import (
	"github.com/gin-gonic/gin"

	"gstsync/internal/middleware"
	"gstsync/internal/service"
)

// InvoiceHandler handles invoice lookups.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Get handles GET /api/v1/invoices/:orderId
// @Summary      Get an order's invoice
// @Description  Returns the invoice record, its ledger entries (including credit-note reversals), recent webhook deliveries and a time-limited document link.
// @Tags         invoices
// @Produce      json
// @Param        orderId path string true "Platform order ID"
// @Param        shop query string true "Shop domain"
// @Success      200 {object} APIResponse{data=domain.InvoiceDetail}
// @Failure      401 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Security     BearerAuth
// @Router       /api/v1/invoices/{orderId} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	shop, err := middleware.GetShop(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	detail, err := h.invoiceService.GetDetail(c.Request.Context(), shop, c.Param("orderId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, detail)
}
