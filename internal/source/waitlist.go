// Package source fetches the two external data inputs: the live waitlist
// JSON document and the historical CSV ledger of cleared blocks. Both are
// plain request/response fetches with a fixed timeout and no retries; retry
// policy, if any, belongs to the caller.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Default endpoints and configuration.
const (
	DefaultWaitlistURL = "https://accountws.arin.net/public/rest/waitingList"
	DefaultLedgerURL   = "https://www.arin.net/resources/guide/ipv4/blocks_cleared/waiting_list_blocks_issued.csv"
	DefaultTimeout     = 30 * time.Second
)

// WaitlistClient fetches the current waitlist JSON document.
type WaitlistClient struct {
	url    string
	client *http.Client
}

// Option configures a source client.
type Option func(*options)

type options struct {
	timeout time.Duration
	client  *http.Client
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithHTTPClient sets a custom http.Client, overriding the timeout option.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

func buildClient(opts []Option) *http.Client {
	o := options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.client != nil {
		return o.client
	}
	return &http.Client{Timeout: o.timeout}
}

// NewWaitlistClient creates a client for the waitlist endpoint.
// An empty url selects the default endpoint.
func NewWaitlistClient(url string, opts ...Option) *WaitlistClient {
	if url == "" {
		url = DefaultWaitlistURL
	}
	return &WaitlistClient{url: url, client: buildClient(opts)}
}

// Fetch retrieves the raw waitlist JSON payload.
func (c *WaitlistClient) Fetch(ctx context.Context) ([]byte, error) {
	return fetch(ctx, c.client, c.url)
}

func fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", url, err)
	}
	return body, nil
}
