package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstsync/internal/auth"
	"gstsync/internal/config"
	"gstsync/internal/middleware"
)

func newShopRouter(v *auth.TokenVerifier) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ShopAuth(v))
	r.GET("/reports", func(c *gin.Context) {
		shop, err := middleware.GetShop(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"shop": shop})
	})
	return r
}

func TestShopAuth_ValidToken(t *testing.T) {
	v := auth.NewTokenVerifier(&config.JWTConfig{Secret: "s", Issuer: "gstsync"})
	token, err := v.Issue("demo.myshop.com", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/reports?shop=demo.myshop.com", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	newShopRouter(v).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "demo.myshop.com", resp["shop"])
}

func TestShopAuth_MissingHeader(t *testing.T) {
	v := auth.NewTokenVerifier(&config.JWTConfig{Secret: "s", Issuer: "gstsync"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/reports?shop=demo.myshop.com", http.NoBody)
	newShopRouter(v).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestShopAuth_InvalidToken(t *testing.T) {
	v := auth.NewTokenVerifier(&config.JWTConfig{Secret: "s", Issuer: "gstsync"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/reports?shop=demo.myshop.com", http.NoBody)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	newShopRouter(v).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestShopAuth_ShopMismatch(t *testing.T) {
	v := auth.NewTokenVerifier(&config.JWTConfig{Secret: "s", Issuer: "gstsync"})
	token, err := v.Issue("other.myshop.com", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/reports?shop=demo.myshop.com", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	newShopRouter(v).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestShopAuth_ShopFromTokenWhenQueryOmitted(t *testing.T) {
	v := auth.NewTokenVerifier(&config.JWTConfig{Secret: "s", Issuer: "gstsync"})
	token, err := v.Issue("demo.myshop.com", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/reports", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	newShopRouter(v).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetShop_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err := middleware.GetShop(c)
	assert.Error(t, err)
}
