package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gstsync/internal/domain"
	"gstsync/internal/handler"
	"gstsync/internal/middleware"
	"gstsync/mocks"
)

func newInvoiceContext(orderID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices/"+orderID+"?shop="+testShop, http.NoBody)
	c.Params = gin.Params{{Key: "orderId", Value: orderID}}
	c.Set(middleware.ContextKeyShop, testShop)
	return c, w
}

func TestInvoiceHandler_Get(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	detail := &domain.InvoiceDetail{
		Invoice:     &domain.InvoiceRecord{Shop: testShop, OrderID: "9001", InvoiceID: "INV-1001"},
		DocumentURL: "https://signed",
	}
	svc.On("GetDetail", mock.Anything, testShop, "9001").Return(detail, nil)

	c, w := newInvoiceContext("9001")
	handler.NewInvoiceHandler(svc).Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, "https://signed", data["document_url"])
	inv := data["invoice"].(map[string]interface{})
	assert.Equal(t, "INV-1001", inv["invoice_id"])
}

func TestInvoiceHandler_NotFound(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	svc.On("GetDetail", mock.Anything, testShop, "404").Return(nil, domain.ErrNotFound)

	c, w := newInvoiceContext("404")
	handler.NewInvoiceHandler(svc).Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeResponse(t, w).Error.Code)
}
