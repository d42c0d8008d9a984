// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/caltechlibrary/iga/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	DefaultUserAgent = "iga/0.1"
	maxBodyBytes     = 32 << 20
)

// StatusError reports a non-200 response. It unwraps to types.ErrNotFound
// for 404 and 410 and to types.ErrUnavailable otherwise.
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("GET %s returned %d", e.URL, e.Status)
	}
	return fmt.Sprintf("GET %s returned %d: %s", e.URL, e.Status, e.Body)
}

func (e *StatusError) Unwrap() error {
	if e.Status == http.StatusNotFound || e.Status == http.StatusGone {
		return types.ErrNotFound
	}
	return types.ErrUnavailable
}

// Client issues GET requests with a fixed User-Agent and retry policy.
type Client struct {
	HTTP       *http.Client
	UserAgent  string
	MaxRetries int
}

// NewClient builds a Client from shared HTTP settings, filling defaults.
func NewClient(cfg types.HTTPConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &Client{
		HTTP:       &http.Client{Timeout: timeout},
		UserAgent:  ua,
		MaxRetries: cfg.MaxRetries,
	}
}

// Get fetches url and returns the body of a 200 response. Transport
// failures are wrapped with types.ErrUnavailable; context errors are
// returned as they are.
func (c *Client) Get(ctx context.Context, url string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := DoWithRetry(ctx, client, req, c.MaxRetries)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: GET %s: %v", types.ErrUnavailable, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{URL: url, Status: resp.StatusCode, Body: string(body)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", types.ErrUnavailable, url, err)
	}
	return data, nil
}

// GetJSON fetches url and decodes the JSON body into dst.
func (c *Client) GetJSON(ctx context.Context, url string, header http.Header, dst any) error {
	if header == nil {
		header = http.Header{}
	}
	if header.Get("Accept") == "" {
		header.Set("Accept", "application/json")
	}
	data, err := c.Get(ctx, url, header)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", types.ErrUnavailable, url, err)
	}
	return nil
}
