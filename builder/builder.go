// SPDX-License-Identifier: EPL-2.0

// Package builder obtains waveform data for an audio asset.
//
// An acquisition uses exactly one of three strategies: fetch precomputed
// data from a server, parse precomputed data held in memory, or generate it
// from audio, either already decoded or fetched from the URL the host media
// element is playing. Every acquisition reports through a single callback.
package builder

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ik5/audwave/observe"
	"github.com/ik5/audwave/transport"
	"github.com/ik5/audwave/waveform"
)

const (
	strategyNone   = "none"
	strategyRemote = "remote"
	strategyLocal  = "local"
	strategyBuffer = "audio_buffer"
	strategyFetch  = "audio_fetch"
)

// Builder runs acquisitions. It is safe for concurrent use and is meant to
// live as long as the session that owns the media element.
type Builder struct {
	client  *transport.Client
	codec   Codec
	decoder AudioDecoder
	caps    Capabilities
	media   MediaElement
	logger  *slog.Logger
	metrics *observe.Metrics

	mu    sync.Mutex
	calls map[*Call]struct{}
}

type Option func(*Builder)

func WithTransport(c *transport.Client) Option {
	return func(b *Builder) { b.client = c }
}

// WithCapabilities sets the remote formats that may be requested. Both
// formats are allowed by default.
func WithCapabilities(c Capabilities) Option {
	return func(b *Builder) { b.caps = c }
}

func WithCodec(c Codec) Option {
	return func(b *Builder) { b.codec = c }
}

func WithAudioDecoder(d AudioDecoder) Option {
	return func(b *Builder) { b.decoder = d }
}

// WithMedia sets the media element used by audio sources that do not name
// one.
func WithMedia(m MediaElement) Option {
	return func(b *Builder) { b.media = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

func WithMetrics(m *observe.Metrics) Option {
	return func(b *Builder) { b.metrics = m }
}

func New(opts ...Option) *Builder {
	b := &Builder{
		codec:   waveform.Codec{},
		decoder: waveform.Generator{},
		caps:    Capabilities{Binary: true, JSON: true},
		calls:   make(map[*Call]struct{}),
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.client == nil {
		b.client = transport.NewClient()
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	if b.metrics == nil {
		b.metrics = observe.DefaultMetrics()
	}

	return b
}

// Acquire starts an acquisition and returns its handle. Configuration
// errors are reported through cb before Acquire returns; every other
// outcome is reported from another goroutine.
func (b *Builder) Acquire(ctx context.Context, opts Options, cb Callback) *Call {
	c := b.newCall(ctx, cb)

	opts = b.promoteDecoders(opts)

	strategy, err := b.route(&opts)
	c.strategy = strategy
	b.metrics.Start(c.ctx, strategy)

	if err != nil {
		c.finish(nil, err)
		return c
	}

	b.track(c)
	b.logger.Debug("acquiring waveform", "call_id", c.id.String(), "strategy", strategy)

	go func() {
		switch strategy {
		case strategyRemote:
			c.fetchRemote(opts.Remote, opts.WithCredentials)
		case strategyLocal:
			c.buildLocal(opts.Local)
		default:
			c.buildFromAudio(opts.Audio, opts.scale(opts.Audio), opts.WithCredentials)
		}
	}()

	return c
}

// Cancel aborts the network request of every call started by b that has
// one in flight. Those calls report ErrTransportAborted.
func (b *Builder) Cancel() {
	b.mu.Lock()
	calls := make([]*Call, 0, len(b.calls))
	for c := range b.calls {
		calls = append(calls, c)
	}
	b.mu.Unlock()

	for _, c := range calls {
		c.abortInFlight(false)
	}
}

// promoteDecoders turns the deprecated top-level Decoders into an audio
// source.
func (b *Builder) promoteDecoders(opts Options) Options {
	if opts.Decoders == nil {
		return opts
	}

	b.logger.Warn("Options.Decoders is deprecated, set Audio.Decoders instead")

	if opts.Audio == nil {
		opts.Audio = &AudioSource{Decoders: opts.Decoders}
	} else if opts.Audio.Decoders == nil {
		src := *opts.Audio
		src.Decoders = opts.Decoders
		opts.Audio = &src
	}
	opts.Decoders = nil

	return opts
}

func (b *Builder) route(opts *Options) (string, error) {
	n := 0
	for _, set := range []bool{opts.Remote != nil, opts.Local != nil, opts.Audio != nil} {
		if set {
			n++
		}
	}

	switch {
	case n > 1:
		return strategyNone, ErrConfigurationConflict
	case opts.Remote != nil:
		return strategyRemote, nil
	case opts.Local != nil:
		return strategyLocal, nil
	case opts.Audio != nil:
		if opts.Audio.Buffer != nil {
			return strategyBuffer, nil
		}

		if opts.Audio.Media == nil && b.media != nil {
			src := *opts.Audio
			src.Media = b.media
			opts.Audio = &src
		}
		if opts.Audio.Decoders == nil || opts.Audio.Media == nil {
			return strategyNone, ErrInvalidAudioSource
		}

		return strategyFetch, nil
	default:
		return strategyNone, ErrNoSource
	}
}

func (b *Builder) track(c *Call) {
	b.mu.Lock()
	b.calls[c] = struct{}{}
	b.mu.Unlock()
}

func (b *Builder) untrack(c *Call) {
	b.mu.Lock()
	delete(b.calls, c)
	b.mu.Unlock()
}

// inFlight is the number of tracked calls.
func (b *Builder) inFlight() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.calls)
}
