package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"gstsync/internal/domain"
	"gstsync/internal/middleware"
	"gstsync/internal/service"
)

// WebhookHandler receives order and refund events from the commerce platform.
type WebhookHandler struct {
	webhookService service.WebhookService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(webhookService service.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService}
}

// WebhookResult is the response body for an accepted delivery.
type WebhookResult struct {
	Topic   domain.WebhookTopic    `json:"topic"`
	Outcome domain.PipelineOutcome `json:"outcome"`
}

// Receive handles POST /webhooks/:topic
// @Summary      Receive a webhook delivery
// @Description  Runs the invoice and ledger pipeline for an order or refund event. Duplicate deliveries are acknowledged without side effects.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        topic path string true "Event topic" Enums(orders-create, orders-updated, orders-cancelled, refunds-create)
// @Param        X-Webhook-Shop-Domain header string true "Shop domain"
// @Param        X-Webhook-Hmac-Sha256 header string true "Base64 HMAC-SHA256 of the body"
// @Success      200 {object} APIResponse{data=WebhookResult}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Failure      422 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Router       /webhooks/{topic} [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	shop, err := middleware.GetShop(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	topic := domain.WebhookTopic(c.Param("topic"))
	if !domain.ValidTopics[topic] {
		HandleError(c, domain.ErrUnknownTopic)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read request body")
		return
	}

	outcome, err := h.dispatch(c, shop, topic, body)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, WebhookResult{Topic: topic, Outcome: outcome})
}

func (h *WebhookHandler) dispatch(c *gin.Context, shop string, topic domain.WebhookTopic, body []byte) (domain.PipelineOutcome, error) {
	ctx := c.Request.Context()

	if topic == domain.TopicRefundCreated {
		var refund domain.RawRefund
		if err := decodeStrict(body, &refund); err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrInvalidRefund, err)
		}
		return h.webhookService.HandleRefundCreated(ctx, shop, &refund)
	}

	var order domain.RawOrder
	if err := decodeStrict(body, &order); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidOrder, err)
	}
	switch topic {
	case domain.TopicOrderCreated:
		return h.webhookService.HandleOrderCreated(ctx, shop, &order)
	case domain.TopicOrderUpdated:
		return h.webhookService.HandleOrderUpdated(ctx, shop, &order)
	default:
		return h.webhookService.HandleOrderCancelled(ctx, shop, &order)
	}
}

// decodeStrict decodes a single JSON value and rejects trailing data.
// Unknown fields are allowed; platform payloads carry far more than we read.
func decodeStrict(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON body")
	}
	return nil
}
