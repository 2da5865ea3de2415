// Package ipinfo provides a client for the token-authenticated IP-geo
// provider. Uses raw HTTP calls (no SDK) to minimize external dependencies.
package ipinfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the ipinfo.io endpoint; the IP is appended as a path segment.
const DefaultBaseURL = "https://ipinfo.io"

// ErrNotConfigured is returned when no access token is set.
var ErrNotConfigured = errors.New("ipinfo: not configured")

// Geo is the provider's geo metadata for an IP. All fields are optional
// in the provider response.
type Geo struct {
	City     string `json:"city"`
	Region   string `json:"region"`
	Country  string `json:"country"`
	Postal   string `json:"postal"`
	Timezone string `json:"timezone"`
}

// Client queries the IP-geo provider keyed by IP and an access token.
type Client struct {
	BaseURL    string
	Token      string
	httpClient *http.Client
}

// NewClient creates a Client. An empty baseURL selects the default provider.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		Token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup fetches geo metadata for ip. Non-2xx responses and transport
// failures are errors; the caller decides what a failed lookup means
// for the enrichment as a whole.
func (c *Client) Lookup(ctx context.Context, ip string) (Geo, error) {
	if c.Token == "" {
		return Geo{}, ErrNotConfigured
	}

	u := fmt.Sprintf("%s/%s/json?token=%s", c.BaseURL, url.PathEscape(ip), url.QueryEscape(c.Token))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Geo{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Geo{}, fmt.Errorf("ipinfo: lookup %s: %w", ip, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Geo{}, fmt.Errorf("ipinfo: lookup %s: status %d", ip, resp.StatusCode)
	}

	var geo Geo
	if err := json.NewDecoder(resp.Body).Decode(&geo); err != nil {
		return Geo{}, fmt.Errorf("ipinfo: decode response: %w", err)
	}
	return geo, nil
}
