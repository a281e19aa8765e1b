package platform_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstsync/internal/config"
	"gstsync/internal/domain"
	"gstsync/internal/platform"
	"gstsync/mocks"
)

const shop = "demo.myshop.com"

func newClient(t *testing.T, handler http.HandlerFunc) (*platform.Client, *mocks.MockShopRepo) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	shops := new(mocks.MockShopRepo)
	shops.On("Get", mock.Anything, shop).
		Return(&domain.ShopSettings{Shop: shop, AccessToken: "tok-123"}, nil).Maybe()

	c := platform.NewClient(shops,
		&config.PlatformConfig{APIVersion: "2024-07", BaseURL: server.URL},
		&config.HSNConfig{MetafieldNamespace: "custom", MetafieldKey: "hsn_code"})
	return c, shops
}

func TestFetchProductHSN_Found(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2024-07/products/7001/metafields.json", r.URL.Path)
		assert.Equal(t, "custom", r.URL.Query().Get("namespace"))
		assert.Equal(t, "hsn_code", r.URL.Query().Get("key"))
		assert.Equal(t, "tok-123", r.Header.Get("X-Access-Token"))
		_, _ = w.Write([]byte(`{"metafields":[{"namespace":"custom","key":"hsn_code","value":" 6109 "}]}`))
	})

	code, err := c.FetchProductHSN(context.Background(), shop, "7001")
	require.NoError(t, err)
	assert.Equal(t, "6109", code)
}

func TestFetchProductHSN_NoMetafield(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"metafields":[{"namespace":"other","key":"hsn_code","value":"1234"}]}`))
	})

	code, err := c.FetchProductHSN(context.Background(), shop, "7001")
	require.NoError(t, err)
	assert.Empty(t, code)
}

func TestFetchProductHSN_ProductGone(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	code, err := c.FetchProductHSN(context.Background(), shop, "7001")
	require.NoError(t, err)
	assert.Empty(t, code)
}

func TestFetchProductHSN_ServerError(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})

	_, err := c.FetchProductHSN(context.Background(), shop, "7001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestFetchProductHSN_NoAccessToken(t *testing.T) {
	shops := new(mocks.MockShopRepo)
	shops.On("Get", mock.Anything, shop).Return(&domain.ShopSettings{Shop: shop}, nil)
	c := platform.NewClient(shops, &config.PlatformConfig{BaseURL: "http://127.0.0.1:1"}, &config.HSNConfig{})

	_, err := c.FetchProductHSN(context.Background(), shop, "7001")
	assert.Error(t, err)
}

func TestLocationProvince(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2024-07/locations/42.json", r.URL.Path)
		_, _ = w.Write([]byte(`{"location":{"id":42,"province":"Karnataka"}}`))
	})

	province, err := c.LocationProvince(context.Background(), shop, 42)
	require.NoError(t, err)
	assert.Equal(t, "Karnataka", province)
}

func TestLocationProvince_Missing(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.LocationProvince(context.Background(), shop, 42)
	assert.Error(t, err)
}

func TestLocationProvince_ShopLookupFails(t *testing.T) {
	shops := new(mocks.MockShopRepo)
	shops.On("Get", mock.Anything, shop).Return(nil, domain.ErrNotFound)
	c := platform.NewClient(shops, &config.PlatformConfig{BaseURL: "http://127.0.0.1:1"}, &config.HSNConfig{})

	_, err := c.LocationProvince(context.Background(), shop, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
