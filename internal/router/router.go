package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "gstsync/docs"
	"gstsync/internal/auth"
	"gstsync/internal/config"
	"gstsync/internal/handler"
	"gstsync/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Health  *handler.HealthHandler
	Webhook *handler.WebhookHandler
	Report  *handler.ReportHandler
	Invoice *handler.InvoiceHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, verifier *auth.TokenVerifier, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Platform webhooks - HMAC signed
	webhooks := r.Group("/webhooks")
	webhooks.Use(middleware.WebhookSignature(cfg.Webhook.Secret, cfg.Webhook.MaxBodyBytes))
	webhooks.POST("/:topic", h.Webhook.Receive)

	// Merchant API - shop token required
	v1 := r.Group("/api/v1")
	v1.Use(middleware.ShopAuth(verifier))

	reports := v1.Group("/reports")
	reports.GET("/gst", h.Report.GST)
	reports.GET("/entries", h.Report.Entries)

	v1.GET("/invoices/:orderId", h.Invoice.Get)

	return r
}
