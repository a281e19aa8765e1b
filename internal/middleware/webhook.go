package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	HeaderWebhookSignature = "X-Webhook-Hmac-Sha256"
	HeaderWebhookShop      = "X-Webhook-Shop-Domain"
	HeaderWebhookID        = "X-Webhook-Id"
)

// Sign returns the base64 HMAC-SHA256 of body under secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// WebhookSignature authenticates inbound webhook deliveries before any parsing.
// The raw body is read once (bounded by maxBody), verified against the signature
// header and then restored for the handler.
func WebhookSignature(secret string, maxBody int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop := c.GetHeader(HeaderWebhookShop)
		signature := c.GetHeader(HeaderWebhookSignature)
		if shop == "" || signature == "" {
			abortUnauthorized(c, "missing webhook signature or shop header")
			return
		}

		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBody+1))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   gin.H{"code": "BAD_REQUEST", "message": "could not read request body"},
			})
			return
		}
		if int64(len(body)) > maxBody {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"success": false,
				"error":   gin.H{"code": "PAYLOAD_TOO_LARGE", "message": "webhook body exceeds limit"},
			})
			return
		}

		expected := Sign(secret, body)
		if secret == "" || !hmac.Equal([]byte(expected), []byte(signature)) {
			log.WithField("shop", shop).Warn("middleware.WebhookSignature: signature mismatch")
			abortUnauthorized(c, "invalid webhook signature")
			return
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Set(ContextKeyShop, shop)
		c.Next()
	}
}
