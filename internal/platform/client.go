// Package platform reads product and location data from the commerce platform Admin API.
package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gstsync/internal/config"
	"gstsync/internal/port"
)

const (
	accessTokenHeader = "X-Access-Token"
	defaultTimeout    = 10 * time.Second
)

// Client implements port.ClassificationFetcher and port.LocationResolver.
// Access tokens are read per shop from the shop settings store.
type Client struct {
	shops      port.ShopRepository
	apiVersion string
	baseURL    string
	namespace  string
	key        string
	client     *http.Client
}

var (
	_ port.ClassificationFetcher = (*Client)(nil)
	_ port.LocationResolver      = (*Client)(nil)
)

// NewClient creates an Admin API client. An empty platform base URL means
// requests go to https://<shop>.
func NewClient(shops port.ShopRepository, cfg *config.PlatformConfig, hsnCfg *config.HSNConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		shops:      shops,
		apiVersion: cfg.APIVersion,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		namespace:  hsnCfg.MetafieldNamespace,
		key:        hsnCfg.MetafieldKey,
		client:     &http.Client{Timeout: timeout},
	}
}

type metafieldsResponse struct {
	Metafields []struct {
		Namespace string `json:"namespace"`
		Key       string `json:"key"`
		Value     string `json:"value"`
	} `json:"metafields"`
}

// FetchProductHSN returns the product's classification metafield. A product
// without the metafield, or one that no longer exists, yields an empty code.
func (c *Client) FetchProductHSN(ctx context.Context, shop, productID string) (string, error) {
	q := url.Values{}
	q.Set("namespace", c.namespace)
	q.Set("key", c.key)
	path := fmt.Sprintf("/products/%s/metafields.json?%s", url.PathEscape(productID), q.Encode())

	var resp metafieldsResponse
	found, err := c.get(ctx, shop, path, &resp)
	if err != nil {
		return "", fmt.Errorf("platform.FetchProductHSN: %w", err)
	}
	if !found {
		return "", nil
	}
	for _, m := range resp.Metafields {
		if m.Namespace == c.namespace && m.Key == c.key {
			return strings.TrimSpace(m.Value), nil
		}
	}
	return "", nil
}

type locationResponse struct {
	Location struct {
		ID       int64  `json:"id"`
		Province string `json:"province"`
	} `json:"location"`
}

func (c *Client) LocationProvince(ctx context.Context, shop string, locationID int64) (string, error) {
	var resp locationResponse
	found, err := c.get(ctx, shop, fmt.Sprintf("/locations/%d.json", locationID), &resp)
	if err != nil {
		return "", fmt.Errorf("platform.LocationProvince: %w", err)
	}
	if !found || resp.Location.Province == "" {
		return "", fmt.Errorf("platform.LocationProvince: location %d has no province", locationID)
	}
	return resp.Location.Province, nil
}

// get performs an authenticated GET and decodes the JSON body into out.
// A 404 reports found=false without error.
func (c *Client) get(ctx context.Context, shop, path string, out any) (bool, error) {
	settings, err := c.shops.Get(ctx, shop)
	if err != nil {
		return false, fmt.Errorf("loading shop settings: %w", err)
	}
	if settings.AccessToken == "" {
		return false, fmt.Errorf("shop %s has no access token", shop)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(shop, path), http.NoBody)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(accessTokenHeader, settings.AccessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("calling admin API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("admin API error (status %d): %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("unmarshaling response: %w", err)
	}
	return true, nil
}

func (c *Client) endpoint(shop, path string) string {
	base := c.baseURL
	if base == "" {
		base = "https://" + shop
	}
	return fmt.Sprintf("%s/admin/api/%s%s", base, c.apiVersion, path)
}
