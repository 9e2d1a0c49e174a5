// SPDX-License-Identifier: EPL-2.0

package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
)

// Response is a completed exchange.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// GetHeader returns the first value of the named header, or "".
func (r *Response) GetHeader(name string) string {
	return r.Header.Get(name)
}

// Handlers receive the outcome of a request. Exactly one is called, from
// the goroutine started by Send. Nil handlers are skipped.
type Handlers struct {
	OnLoad  func(*Response)
	OnError func(error)
	OnAbort func()
}

// Request is a single GET that has not necessarily been sent yet.
type Request struct {
	client          *Client
	url             string
	format          Format
	withCredentials bool
	handlers        Handlers

	ctx    context.Context
	cancel context.CancelFunc

	sent    atomic.Bool
	aborted atomic.Bool
	once    sync.Once
	done    chan struct{}
}

// Request prepares a GET for url. Nothing happens until Send.
func (c *Client) Request(ctx context.Context, url string, format Format, withCredentials bool, h Handlers) *Request {
	rctx, cancel := context.WithCancel(ctx)

	return &Request{
		client:          c,
		url:             url,
		format:          format,
		withCredentials: withCredentials,
		handlers:        h,
		ctx:             rctx,
		cancel:          cancel,
		done:            make(chan struct{}),
	}
}

func (r *Request) URL() string       { return r.url }
func (r *Request) Format() Format    { return r.format }
func (r *Request) Credentials() bool { return r.withCredentials }

// Done is closed once the outcome handler has returned.
func (r *Request) Done() <-chan struct{} { return r.done }

// Send starts the exchange in the background. Subsequent calls do nothing.
func (r *Request) Send() {
	if !r.sent.CompareAndSwap(false, true) {
		return
	}

	go r.run()
}

// Abort cancels the request. A sent request reports OnAbort unless its
// outcome was already delivered.
func (r *Request) Abort() {
	r.aborted.Store(true)
	r.cancel()
}

func (r *Request) run() {
	defer r.cancel()

	resp, err := r.do()

	switch {
	case r.aborted.Load() || (err != nil && errors.Is(err, context.Canceled)):
		r.finish(func() {
			if r.handlers.OnAbort != nil {
				r.handlers.OnAbort()
			}
		})
	case err != nil:
		r.finish(func() {
			if r.handlers.OnError != nil {
				r.handlers.OnError(err)
			}
		})
	default:
		r.finish(func() {
			if r.handlers.OnLoad != nil {
				r.handlers.OnLoad(resp)
			}
		})
	}
}

func (r *Request) finish(fn func()) {
	r.once.Do(func() {
		defer close(r.done)
		fn()
	})
}

func (r *Request) do() (*Response, error) {
	req, err := http.NewRequestWithContext(r.ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	req.Header.Set("Accept", r.format.accept())
	if r.client.userAgent != "" {
		req.Header.Set("User-Agent", r.client.userAgent)
	}
	if r.withCredentials && r.client.authorize != nil {
		r.client.authorize(req)
	}

	r.client.logger.Debug("transport request",
		"url", r.url,
		"format", string(r.format),
		"with_credentials", r.withCredentials,
	)

	resp, err := r.client.httpClient(r.withCredentials).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	var body io.Reader = resp.Body
	if limit := r.client.maxBody; limit > 0 {
		body = io.LimitReader(resp.Body, limit+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrRequestFailed, err)
	}
	if limit := r.client.maxBody; limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %d bytes", ErrBodyTooLarge, limit)
	}

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   data,
	}, nil
}
