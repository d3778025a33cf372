// Package wpapi reads site metadata, pages and posts from a WordPress REST API.
//
// Every lookup degrades instead of failing: transport errors, non-2xx statuses,
// malformed JSON and empty result sets all collapse into the operation's empty
// result (nil, an empty slice, or the static site info). Failures are logged
// through the logger carried by the context.
package wpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	slogctx "github.com/veqryn/slog-context"
)

const (
	// DefaultBaseURL is a placeholder that signals a missing configuration.
	DefaultBaseURL = "https://example.org/wp-json"

	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "athletos-web"
	maxBodyBytes     = 4 << 20
)

var (
	errStatus = errors.New("unexpected status")
	errDecode = errors.New("malformed response")
	errEmpty  = errors.New("empty result")
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the content gateway. It holds no mutable state and is safe for
// concurrent use.
type Client struct {
	base      string
	http      Doer
	userAgent string
	timeout   time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport used for outbound requests.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.http = d
		}
	}
}

// WithTimeout sets the per-request timeout. It applies to *http.Client
// transports only; a client passed to WithHTTPClient is copied, never
// modified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent header of outbound requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// New constructs a Client rooted at baseURL, e.g. https://cms.example/wp-json.
// An empty baseURL falls back to DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	c := &Client{
		base:      strings.TrimRight(base, "/"),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	switch hc, ok := c.http.(*http.Client); {
	case c.http == nil:
		timeout := c.timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	case ok && c.timeout > 0:
		own := *hc
		own.Timeout = c.timeout
		c.http = &own
	}
	return c
}

// BaseURL reports the normalized API root.
func (c *Client) BaseURL() string {
	return c.base
}

func (c *Client) endpoint(path string, query url.Values) string {
	target := c.base + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return fmt.Errorf("construct request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, maxBodyBytes)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, body)
		return fmt.Errorf("%w: %s", errStatus, resp.Status)
	}
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errDecode, err)
	}
	// Drain the remainder so the connection can be reused.
	_, _ = io.Copy(io.Discard, body)
	return nil
}

func logFailure(ctx context.Context, path string, err error) {
	logger := slogctx.FromCtx(ctx)
	if errors.Is(err, errEmpty) {
		logger.DebugContext(ctx, "wordpress lookup empty", slog.String("endpoint", path))
		return
	}
	logger.WarnContext(ctx, "wordpress lookup failed", slog.String("endpoint", path), slog.Any("error", err))
}
