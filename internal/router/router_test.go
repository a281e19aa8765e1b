package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstsync/internal/auth"
	"gstsync/internal/config"
	"gstsync/internal/domain"
	"gstsync/internal/handler"
	"gstsync/internal/middleware"
	"gstsync/internal/router"
	"gstsync/mocks"
)

const (
	shop          = "demo.myshop.com"
	webhookSecret = "whsec"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

type testRouter struct {
	engine   *gin.Engine
	verifier *auth.TokenVerifier
	webhooks *mocks.MockWebhookService
	reports  *mocks.MockReportService
	invoices *mocks.MockInvoiceService
}

func newTestRouter() *testRouter {
	cfg := &config.Config{
		JWT:     config.JWTConfig{Secret: "jwt-secret", Issuer: "gstsync"},
		Webhook: config.WebhookConfig{Secret: webhookSecret, MaxBodyBytes: 1 << 20},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
	tr := &testRouter{
		verifier: auth.NewTokenVerifier(&cfg.JWT),
		webhooks: new(mocks.MockWebhookService),
		reports:  new(mocks.MockReportService),
		invoices: new(mocks.MockInvoiceService),
	}
	tr.engine = router.Setup(cfg, tr.verifier, router.Handlers{
		Health:  handler.NewHealthHandler(okPinger{}),
		Webhook: handler.NewWebhookHandler(tr.webhooks),
		Report:  handler.NewReportHandler(tr.reports),
		Invoice: handler.NewInvoiceHandler(tr.invoices),
	})
	return tr
}

func (tr *testRouter) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	tr.engine.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	tr := newTestRouter()
	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
		assert.Equal(t, http.StatusOK, tr.serve(req).Code, path)
	}
}

func TestRouter_WebhookRequiresSignature(t *testing.T) {
	tr := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/orders-create", strings.NewReader(`{"id":1,"name":"#1"}`))
	req.Header.Set(middleware.HeaderWebhookShop, shop)

	w := tr.serve(req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	tr.webhooks.AssertNotCalled(t, "HandleOrderCreated", mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_SignedWebhookReachesPipeline(t *testing.T) {
	tr := newTestRouter()
	body := `{"id":1,"name":"#1"}`
	tr.webhooks.On("HandleOrderCreated", mock.Anything, shop, mock.Anything).Return(domain.OutcomeCreated, nil)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/orders-create", strings.NewReader(body))
	req.Header.Set(middleware.HeaderWebhookShop, shop)
	req.Header.Set(middleware.HeaderWebhookSignature, middleware.Sign(webhookSecret, []byte(body)))

	w := tr.serve(req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	tr.webhooks.AssertExpectations(t)
}

func TestRouter_ReportsRequireToken(t *testing.T) {
	tr := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/gst?shop="+shop+"&period=monthly", http.NoBody)
	assert.Equal(t, http.StatusUnauthorized, tr.serve(req).Code)
}

func TestRouter_ReportsWithToken(t *testing.T) {
	tr := newTestRouter()
	token, err := tr.verifier.Issue(shop, time.Hour)
	require.NoError(t, err)
	tr.reports.On("GSTReport", mock.Anything, shop, mock.Anything).Return(&domain.GSTReport{Shop: shop}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/gst?shop="+shop+"&period=monthly", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)

	assert.Equal(t, http.StatusOK, tr.serve(req).Code)
	tr.reports.AssertExpectations(t)
}

func TestRouter_TokenForOtherShop(t *testing.T) {
	tr := newTestRouter()
	token, err := tr.verifier.Issue("other.myshop.com", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/9001?shop="+shop, http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, tr.serve(req).Code)
	tr.invoices.AssertNotCalled(t, "GetDetail", mock.Anything, mock.Anything, mock.Anything)
}
