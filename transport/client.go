// SPDX-License-Identifier: EPL-2.0

package transport

import (
	"log/slog"
	"net/http"
	"time"
)

// Format is the expected response payload type.
type Format string

const (
	FormatBinary Format = "arraybuffer"
	FormatJSON   Format = "json"
	FormatRaw    Format = "raw"
)

func (f Format) accept() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatBinary:
		return "application/octet-stream"
	default:
		return "*/*"
	}
}

// Client issues requests. Cookies and the authorizer are only applied to
// requests made with credentials.
type Client struct {
	plain        *http.Client
	credentialed *http.Client

	base    *http.Client
	jar     http.CookieJar
	timeout time.Duration

	authorize func(*http.Request)
	userAgent string
	maxBody   int64
	logger    *slog.Logger
}

type Option func(*Client)

// WithHTTPClient sets the client requests are made with. Its Jar is only
// used for credentialed requests. The client is copied, so WithCookieJar and
// WithTimeout apply in any order.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.base = hc }
}

// WithCookieJar sets the jar consulted by credentialed requests. It takes
// precedence over the Jar of a client given to WithHTTPClient.
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) { c.jar = jar }
}

// WithTimeout bounds every request including the body read. Zero keeps the
// timeout of the underlying client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithAuthorizer decorates credentialed requests, typically by setting an
// Authorization header.
func WithAuthorizer(fn func(*http.Request)) Option {
	return func(c *Client) { c.authorize = fn }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithMaxBodySize caps the number of body bytes read. Zero means no limit.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) { c.maxBody = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		base:   &http.Client{},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	plain, cred := *c.base, *c.base
	plain.Jar = nil
	if c.jar != nil {
		cred.Jar = c.jar
	}
	if c.timeout > 0 {
		plain.Timeout, cred.Timeout = c.timeout, c.timeout
	}
	c.plain, c.credentialed = &plain, &cred

	return c
}

func (c *Client) httpClient(withCredentials bool) *http.Client {
	if withCredentials {
		return c.credentialed
	}

	return c.plain
}
