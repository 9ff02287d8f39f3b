package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxBodySize caps how much of a response body is read into memory.
const maxBodySize = 4 << 20

// Client sends JSON requests to the API and runs the registered hooks for each
// of them. It is safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	base      http.RoundTripper
	hooks     *hookSet
	timeout   time.Duration
	userAgent string
}

// New creates a client rooted at baseURL, which must be an absolute http or
// https URL. The base URL cannot be changed afterwards.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: u,
		hooks:   &hookSet{},
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := &http.Client{Timeout: c.timeout}
	if c.http != nil {
		copied := *c.http
		hc = &copied
		if hc.Timeout == 0 {
			hc.Timeout = c.timeout
		}
	}

	base := c.base
	if base == nil {
		base = hc.Transport
	}
	if base == nil {
		base = http.DefaultTransport
	}
	hc.Transport = &hookTransport{base: base, hooks: c.hooks}
	c.http = hc

	return c, nil
}

// NewFromConfig creates a client from Config. Options override config values.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	configOpts := []Option{
		WithTimeout(cfg.Timeout),
		WithUserAgent(cfg.UserAgent),
	}
	if cfg.InsecureSkipVerify {
		tr := http.DefaultTransport.(*http.Transport).Clone()
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for self-signed dev servers
		configOpts = append(configOpts, WithTransport(tr))
	}
	return New(cfg.BaseURL, append(configOpts, opts...)...)
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidBaseURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Join(ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidBaseURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidBaseURL)
	}
	return u, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// HTTPClient returns the underlying http.Client. Requests sent through it run
// the registered hooks.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// UseRequest registers a hook that runs before every request.
func (c *Client) UseRequest(h RequestHook) Handle {
	return c.hooks.addRequest(h)
}

// UseResponse registers a hook that observes every response or transport error.
func (c *Client) UseResponse(h ResponseHook) Handle {
	return c.hooks.addResponse(h)
}

// Eject removes a previously registered hook. It reports whether the hook was
// still registered; ejecting twice is harmless.
func (c *Client) Eject(h Handle) bool {
	return c.hooks.remove(h)
}

// HookCount returns the number of registered request and response hooks.
func (c *Client) HookCount() (request, response int) {
	return c.hooks.count()
}

// ResolveURL resolves path against the base URL. Absolute http(s) URLs are
// returned unchanged; trailing slashes are preserved.
func (c *Client) ResolveURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL.JoinPath(path).String()
}

// NewRequest builds a request for path. A non-nil body is encoded as JSON.
func (c *Client) NewRequest(ctx context.Context, method, path string, body any, opts ...RequestOption) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Join(ErrEncodeBody, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.ResolveURL(path), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for _, opt := range opts {
		opt(req)
	}
	return req, nil
}

// Do sends req and decodes a 2xx JSON response into out (skipped when out is
// nil or the body is empty). Non-2xx responses are returned as *HTTPError.
func (c *Client) Do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Method:     req.Method,
			URL:        req.URL.String(),
			Body:       body,
		}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Join(ErrDecodeBody, err)
	}
	return nil
}

// Get sends a GET request for path and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	req, err := c.NewRequest(ctx, http.MethodGet, path, nil, opts...)
	if err != nil {
		return err
	}
	return c.Do(req, out)
}

// Post sends in as a JSON POST body to path and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, in, out any, opts ...RequestOption) error {
	req, err := c.NewRequest(ctx, http.MethodPost, path, in, opts...)
	if err != nil {
		return err
	}
	return c.Do(req, out)
}
