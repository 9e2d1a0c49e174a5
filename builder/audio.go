// SPDX-License-Identifier: EPL-2.0

package builder

import (
	"context"

	"github.com/ik5/audwave/transport"
	"github.com/ik5/audwave/waveform"
)

func (c *Call) buildFromAudio(src *AudioSource, scale int, withCredentials bool) {
	opts := waveform.GenerateOptions{
		Scale:         scale,
		SplitChannels: src.MultiChannel,
		SampleRate:    src.SampleRate,
	}

	if src.Buffer != nil {
		d, err := safely(func() (*waveform.Data, error) {
			return c.b.decoder.FromSource(c.ctx, src.Buffer, opts)
		})
		c.finish(d, err)
		return
	}

	if url := src.Media.CurrentSrc(); url != "" {
		c.requestAudio(url, src, opts, withCredentials)
		return
	}

	// Wait for the host to select a source. Ending the call context while
	// waiting aborts the call and drops the subscription.
	if rn, ok := src.Media.(ReadyNotifier); ok {
		stop := context.AfterFunc(c.ctx, func() {
			c.finish(nil, ErrTransportAborted)
		})
		release := rn.OnceReady(func() {
			if !stop() {
				return
			}
			c.requestAudio(src.Media.CurrentSrc(), src, opts, withCredentials)
		})
		if release != nil {
			context.AfterFunc(c.ctx, release)
		}
		return
	}

	c.requestAudio("", src, opts, withCredentials)
}

func (c *Call) requestAudio(url string, src *AudioSource, opts waveform.GenerateOptions, withCredentials bool) {
	if url == "" {
		c.b.logger.Warn("media element source is invalid", "call_id", c.id.String())
		c.abandon()
		return
	}

	if c.ctx.Err() != nil {
		c.finish(nil, ErrTransportAborted)
		return
	}

	c.fetch(url, transport.FormatRaw, withCredentials, func(body []byte) {
		d, err := safely(func() (*waveform.Data, error) {
			return c.b.decoder.FromBytes(c.ctx, src.Decoders, body, opts)
		})
		c.finish(d, err)
	})
}
