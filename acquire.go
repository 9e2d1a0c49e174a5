// SPDX-License-Identifier: EPL-2.0

package audwave

import (
	"context"

	"github.com/ik5/audwave/builder"
	"github.com/ik5/audwave/formats"
	"github.com/ik5/audwave/waveform"
)

// Acquire runs one acquisition on b and waits for its outcome.
//
// When ctx ends first the call is cancelled and its outcome, normally
// builder.ErrTransportAborted, is returned. A call dropped because the media
// element had no source returns ErrMediaUnavailable.
func Acquire(ctx context.Context, b *builder.Builder, opts builder.Options) (*waveform.Data, error) {
	var (
		data *waveform.Data
		err  error
	)

	call := b.Acquire(ctx, opts, func(d *waveform.Data, e error) {
		data, err = d, e
	})

	select {
	case <-call.Done():
		return data, err
	case <-call.Abandoned():
		return nil, ErrMediaUnavailable
	case <-ctx.Done():
	}

	call.Cancel()

	select {
	case <-call.Done():
		return data, err
	case <-call.Abandoned():
		return nil, ctx.Err()
	}
}

// Generate decodes an encoded audio file held in memory with every bundled
// decoder available and returns its peaks.
func Generate(ctx context.Context, data []byte, opts waveform.GenerateOptions) (*waveform.Data, error) {
	return waveform.FromBytes(ctx, formats.NewRegistry(), data, opts)
}
