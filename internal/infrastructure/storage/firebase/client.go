// Package firebase is a client for a realtime-database style store reached
// over HTTPS with bearer tokens. Every resource lives at
// base URI + path + ".json".
package firebase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/exp/slog"
)

const (
	storeMaxConns       = 100
	defaultStoreTimeout = 30 * time.Second
)

type Client struct {
	http       *resty.Client
	credential *Credential
	baseURI    string
	log        *slog.Logger
}

type Option func(*Client)

// WithTimeout sets the timeout of a single store call.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.SetTimeout(timeout)
		}
	}
}

// New creates a client for the store at baseURI.
func New(baseURI string, credential *Credential, log *slog.Logger, opts ...Option) *Client {
	client := resty.NewWithClient(&http.Client{
		Timeout: defaultStoreTimeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxConnsPerHost:     storeMaxConns,
			MaxIdleConnsPerHost: storeMaxConns,
			IdleConnTimeout:     90 * time.Second,
		},
	})

	c := &Client{
		http:       client,
		credential: credential,
		baseURI:    baseURI,
		log:        log.With("component", "store_client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Refresh renews the credential if it has expired.
func (c *Client) Refresh(ctx context.Context) error {
	if !c.credential.Expired() {
		return nil
	}

	c.log.Debug("store credential expired, renewing")
	_, err := c.credential.AccessToken(ctx)
	return err
}

// Get reads the value at path. Any non-success status is ErrNotFound.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		c.log.Warn("store get failed", "path", path, "status", resp.StatusCode())
		return nil, ErrNotFound
	}
	return resp.Body(), nil
}

// Post appends record under path; the store assigns its key.
func (c *Client) Post(ctx context.Context, path string, record any) error {
	return c.write(ctx, http.MethodPost, path, record)
}

// Put replaces the whole subtree at path with record.
func (c *Client) Put(ctx context.Context, path string, record any) error {
	return c.write(ctx, http.MethodPut, path, record)
}

// Delete removes the subtree at path.
func (c *Client) Delete(ctx context.Context, path string) error {
	resp, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		c.log.Warn("store delete failed", "path", path, "status", resp.StatusCode())
		return ErrDelete
	}
	return nil
}

func (c *Client) write(ctx context.Context, method, path string, record any) error {
	resp, err := c.do(ctx, method, path, record)
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		c.log.Warn("store write failed", "method", method, "path", path, "status", resp.StatusCode())
		return ErrWrite
	}
	return nil
}

// do sends one authenticated request. Failing to obtain a token or to send
// the request at all is reported as ErrAuthentication.
func (c *Client) do(ctx context.Context, method, path string, body any) (*resty.Response, error) {
	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}

	token, err := c.credential.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	req := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Accept", "application/json")
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, c.URL(path))
	if err != nil {
		c.log.Error("store request failed", "method", method, "path", path, "error", err)
		return nil, ErrAuthentication
	}

	c.log.Debug("store request", "method", method, "path", path, "status", resp.StatusCode())
	return resp, nil
}

// URL returns the address of the resource at path.
func (c *Client) URL(path string) string {
	return strings.TrimSuffix(c.baseURI, "/") + "/" + strings.TrimPrefix(path, "/") + ".json"
}
