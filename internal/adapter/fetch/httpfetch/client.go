package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"
)

const DefaultConnectTimeout = 200 * time.Millisecond

// Client loads per-advertiser stats payloads over HTTP. The request URL is
// the base URL with the decimal advertiser id appended.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client whose connect phase is bounded by connectTimeout.
// Reading the body deliberately has no deadline: only the dial is bounded.
func New(baseURL string, connectTimeout time.Duration) *Client {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	transport := &http.Transport{
		DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Transport: transport},
	}
}

// Fetch performs one GET for the advertiser and returns the full body.
func (c *Client) Fetch(ctx context.Context, advertiserID int64) ([]byte, error) {
	url := c.baseURL + strconv.FormatInt(advertiserID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
