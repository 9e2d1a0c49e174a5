// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/utils"
)

const defaultChunkFrames = 4096

// GenerateOptions controls peak generation.
type GenerateOptions struct {
	// Scale is the number of audio frames summarized by one index.
	Scale int
	// SplitChannels keeps one min/max series per channel instead of mixing
	// everything down to mono.
	SplitChannels bool
	// Bits is the output resolution, 8 (default) or 16.
	Bits int
	// SampleRate resamples the decoded audio before peaks are taken.
	// Zero keeps the source rate.
	SampleRate int
}

// Generator computes waveform data from decoded audio.
// The zero value is ready to use.
type Generator struct{}

func (Generator) FromSource(ctx context.Context, src audio.Source, opts GenerateOptions) (*Data, error) {
	return FromSource(ctx, src, opts)
}

func (Generator) FromBytes(ctx context.Context, det audio.Detector, data []byte, opts GenerateOptions) (*Data, error) {
	return FromBytes(ctx, det, data, opts)
}

// FromBytes detects the container of data, decodes it and generates peaks.
func FromBytes(ctx context.Context, det audio.Detector, data []byte, opts GenerateOptions) (*Data, error) {
	if det == nil {
		return nil, audio.ErrNoDecoder
	}

	dec, format, err := det.Detect(data)
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	return FromSource(ctx, src, opts)
}

// FromSource drains src, closes it and returns a version 2 waveform with one
// min/max pair per channel for every opts.Scale frames. A trailing partial
// bucket is kept.
func FromSource(ctx context.Context, src audio.Source, opts GenerateOptions) (*Data, error) {
	defer src.Close()

	if opts.Scale <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidScale, opts.Scale)
	}

	bits := opts.Bits
	if bits == 0 {
		bits = 8
	}
	if bits != 8 && bits != 16 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBits, bits)
	}
	if opts.SampleRate < 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidHeader, opts.SampleRate)
	}

	var in audio.Source = src
	if !opts.SplitChannels && src.Channels() > 1 {
		in = audio.NewMonoMixer(src)
	}
	if opts.SampleRate > 0 && opts.SampleRate != in.SampleRate() {
		in = audio.NewResampler(in, opts.SampleRate)
	}

	channels := in.Channels()
	if channels < 1 {
		return nil, fmt.Errorf("%w: channels=%d", ErrInvalidHeader, channels)
	}

	p := newPeaks(channels, opts.Scale, bits)
	buf := make([]float32, defaultChunkFrames*channels)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := in.ReadSamples(buf)
		p.add(buf[:n-n%channels])

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read samples: %w", err)
		}
	}

	p.flush()

	d := &Data{
		Version:         2,
		Channels:        channels,
		SampleRate:      in.SampleRate(),
		SamplesPerPixel: opts.Scale,
		Bits:            bits,
		Length:          len(p.out) / (channels * 2),
		Samples:         p.out,
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

type peaks struct {
	channels int
	scale    int
	bits     int

	count int
	min   []float32
	max   []float32
	out   []int16
}

func newPeaks(channels, scale, bits int) *peaks {
	p := &peaks{
		channels: channels,
		scale:    scale,
		bits:     bits,
		min:      make([]float32, channels),
		max:      make([]float32, channels),
		out:      []int16{},
	}
	p.reset()

	return p
}

func (p *peaks) reset() {
	p.count = 0
	for ch := range p.channels {
		p.min[ch] = math.MaxFloat32
		p.max[ch] = -math.MaxFloat32
	}
}

func (p *peaks) add(samples []float32) {
	for f := 0; f+p.channels <= len(samples); f += p.channels {
		for ch := range p.channels {
			v := samples[f+ch]
			if v < p.min[ch] {
				p.min[ch] = v
			}
			if v > p.max[ch] {
				p.max[ch] = v
			}
		}

		p.count++
		if p.count == p.scale {
			p.flush()
		}
	}
}

func (p *peaks) flush() {
	if p.count == 0 {
		return
	}

	for ch := range p.channels {
		p.out = append(p.out,
			utils.Float32ToPeak(p.min[ch], p.bits),
			utils.Float32ToPeak(p.max[ch], p.bits))
	}
	p.reset()
}
