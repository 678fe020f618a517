package acc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

const (
	defaultEndpointTimeout = 10 * time.Second
	maxBodySize            = 10 << 20 // 10 MB
	maxErrorMessage        = 1 << 10
)

// Client calls the provider's data management, admin and issue APIs with a
// session's bearer token. Calls are sequential and never retried.
type Client struct {
	caps            Capabilities
	httpClient      *http.Client
	endpointTimeout time.Duration
}

type Option func(*Client)

// WithEndpointTimeout bounds each issue-endpoint attempt.
func WithEndpointTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.endpointTimeout = d
		}
	}
}

// New creates a client that authenticates every request with accessToken.
// The HTTP client in ctx (oauth2.HTTPClient) is used as the base transport if set.
func New(ctx context.Context, accessToken string, caps Capabilities, opts ...Option) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	c := &Client{
		caps:            caps,
		httpClient:      oauth2.NewClient(ctx, ts),
		endpointTimeout: defaultEndpointTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Capabilities() Capabilities {
	return c.caps
}

// get fetches endpoint and returns the body of a 200 response. Any other
// status is returned as *HTTPError carrying the (truncated) body.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	target := endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if resp.StatusCode != http.StatusOK {
		msg := string(body)
		if len(msg) > maxErrorMessage {
			msg = msg[:maxErrorMessage]
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: msg}
	}
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	body, err := c.get(ctx, endpoint, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
