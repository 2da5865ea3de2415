// Package ipapi provides a client for the public-IP lookup provider.
// Uses raw HTTP calls (no SDK) to minimize external dependencies.
package ipapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the ipify endpoint returning {"ip": "..."}.
const DefaultBaseURL = "https://api.ipify.org?format=json"

// ErrUnavailable is returned when the provider could not supply an IP
// (network failure or non-2xx status). Callers proceed without an IP.
var ErrUnavailable = errors.New("ipapi: public ip unavailable")

// Client fetches the caller's public IP from a JSON endpoint.
type Client struct {
	BaseURL    string
	httpClient *http.Client
}

// NewClient creates a Client. An empty baseURL selects the default provider.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// PublicIP performs the lookup. Any failure mode collapses into
// ErrUnavailable so the enrichment pipeline has a single condition to
// handle for this bundle.
func (c *Client) PublicIP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if body.IP == "" {
		return "", fmt.Errorf("%w: empty ip in response", ErrUnavailable)
	}
	return body.IP, nil
}
