// SPDX-License-Identifier: EPL-2.0

package builder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ik5/audwave/transport"
	"github.com/ik5/audwave/waveform"
)

const (
	outcomeOK        = "ok"
	outcomeError     = "error"
	outcomeAborted   = "aborted"
	outcomeAbandoned = "abandoned"
)

// Call is one acquisition. Its callback runs at most once; Done is closed
// after it returns.
type Call struct {
	id       uuid.UUID
	b        *Builder
	strategy string
	cb       Callback

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	req      *transport.Request
	canceled bool

	once      sync.Once
	done      chan struct{}
	abandoned chan struct{}
}

func (b *Builder) newCall(ctx context.Context, cb Callback) *Call {
	cctx, cancel := context.WithCancel(ctx)

	return &Call{
		id:        uuid.New(),
		b:         b,
		cb:        cb,
		ctx:       cctx,
		cancel:    cancel,
		done:      make(chan struct{}),
		abandoned: make(chan struct{}),
	}
}

func (c *Call) ID() uuid.UUID { return c.id }

// Done is closed once the callback has returned. It stays open for a call
// abandoned because the media element had no source.
func (c *Call) Done() <-chan struct{} { return c.done }

// Abandoned is closed when the call is dropped without a callback because
// the media element had no source.
func (c *Call) Abandoned() <-chan struct{} { return c.abandoned }

// Cancel aborts the call. A call with a request in flight, or waiting for
// its media element, reports ErrTransportAborted. A call still decoding
// stops at its next chunk. Cancelling the context passed to Acquire has the
// same effect.
func (c *Call) Cancel() {
	c.abortInFlight(true)
	c.cancel()
}

// abortInFlight aborts the current request, if any. When sticky is set, a
// request attached later is aborted as soon as it is sent.
func (c *Call) abortInFlight(sticky bool) {
	c.mu.Lock()
	if sticky {
		c.canceled = true
	}
	req := c.req
	c.mu.Unlock()

	if req != nil {
		req.Abort()
	}
}

func (c *Call) hasRequest() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.req != nil
}

func (c *Call) setRequest(req *transport.Request) {
	c.mu.Lock()
	c.req = req
	canceled := c.canceled
	c.mu.Unlock()

	req.Send()
	if canceled {
		req.Abort()
	}
}

func (c *Call) clearRequest(req *transport.Request) {
	c.mu.Lock()
	if c.req == req {
		c.req = nil
	}
	c.mu.Unlock()
}

func (c *Call) finish(d *waveform.Data, err error) {
	c.once.Do(func() {
		defer close(c.done)
		defer c.cancel()

		c.b.untrack(c)

		outcome := outcomeOK
		switch {
		case errors.Is(err, ErrTransportAborted):
			outcome = outcomeAborted
		case err != nil:
			outcome = outcomeError
		}
		c.b.metrics.RecordAcquisition(context.WithoutCancel(c.ctx), c.strategy, outcome)

		if err != nil {
			c.b.logger.Debug("waveform acquisition failed", "call_id", c.id.String(), "strategy", c.strategy, "err", err)
		} else {
			c.b.logger.Debug("waveform acquired", "call_id", c.id.String(), "strategy", c.strategy,
				"channels", d.Channels, "length", d.Length)
		}

		if c.cb != nil {
			c.cb(d, err)
		}
	})
}

// abandon drops the call without invoking the callback.
func (c *Call) abandon() {
	c.once.Do(func() {
		defer close(c.abandoned)

		c.b.untrack(c)
		c.b.metrics.RecordAcquisition(context.WithoutCancel(c.ctx), c.strategy, outcomeAbandoned)
		c.cancel()
	})
}

// fetch sends one GET and hands an accepted body to onBody. Every other
// outcome finishes the call.
func (c *Call) fetch(url string, format transport.Format, withCredentials bool, onBody func([]byte)) {
	start := time.Now()
	record := func(status, n int) {
		c.b.metrics.RecordFetch(context.WithoutCancel(c.ctx), string(format), status, time.Since(start), n)
	}

	var req *transport.Request
	req = c.b.client.Request(c.ctx, url, format, withCredentials, transport.Handlers{
		OnLoad: func(resp *transport.Response) {
			record(resp.Status, len(resp.Body))
			c.clearRequest(req)

			if !acceptedStatus(resp.Status, resp.Header) {
				c.finish(nil, &StatusError{Code: resp.Status})
				return
			}

			onBody(resp.Body)
		},
		OnError: func(err error) {
			record(0, 0)
			c.clearRequest(req)
			c.finish(nil, fmt.Errorf("%w: %w", ErrTransportFailure, err))
		},
		OnAbort: func() {
			record(0, 0)
			c.clearRequest(req)
			c.finish(nil, ErrTransportAborted)
		},
	})

	c.setRequest(req)
}

// safely runs fn, turning a panic into ErrDecodeFailure.
func safely(fn func() (*waveform.Data, error)) (d *waveform.Data, err error) {
	defer func() {
		if r := recover(); r != nil {
			d, err = nil, fmt.Errorf("%w: panic: %v", ErrDecodeFailure, r)
		}
	}()

	d, err = fn()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}
	if d == nil {
		return nil, fmt.Errorf("%w: no waveform data", ErrDecodeFailure)
	}

	return d, nil
}

func checkWaveform(d *waveform.Data) error {
	if d.Channels != 1 && d.Channels != 2 {
		return errChannels
	}
	if d.Bits != 8 {
		return errBits
	}

	return nil
}
