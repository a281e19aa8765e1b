package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gstsync/internal/auth"
	"gstsync/internal/domain"
)

const (
	ContextKeyShop   = "shop"
	ContextKeyClaims = "claims"
)

// ShopAuth validates a bearer shop token and requires its shop claim to match
// the shop named in the request query.
func ShopAuth(verifier *auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "missing or invalid authorization header")
			return
		}

		claims, err := verifier.Verify(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		if shop := c.Query("shop"); shop != "" && shop != claims.Shop {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"code": "FORBIDDEN", "message": "token is not valid for this shop"},
			})
			return
		}

		c.Set(ContextKeyShop, claims.Shop)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetShop extracts the authenticated shop from the Gin context.
func GetShop(c *gin.Context) (string, error) {
	val, exists := c.Get(ContextKeyShop)
	if !exists {
		return "", domain.ErrUnauthorized
	}
	shop, ok := val.(string)
	if !ok || shop == "" {
		return "", domain.ErrUnauthorized
	}
	return shop, nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   gin.H{"code": "UNAUTHORIZED", "message": message},
	})
}
