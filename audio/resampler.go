// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audwave/utils"
)

// Resampler converts src to another sample rate with Catmull-Rom
// interpolation. The channel count is preserved.
type Resampler struct {
	src      Source
	rate     int
	channels int
	step     float64 // source frames advanced per output frame

	in      []float32
	inN     int
	inPos   int
	srcDone bool
	srcErr  error

	// win holds frames t-1, t0, t+1 and t+2 around the read position.
	// real marks frames that came from src rather than edge padding.
	win     [4][]float32
	real    [4]bool
	pos     float64
	started bool
	live    bool
}

func NewResampler(src Source, rate int) *Resampler {
	channels := max(src.Channels(), 1)
	size := max(src.BufSize(), channels)

	r := &Resampler{
		src:      src,
		rate:     rate,
		channels: channels,
		step:     float64(src.SampleRate()) / float64(rate),
		in:       make([]float32, size-size%channels),
	}
	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// pull copies the next source frame into frame. It reports false once the
// source is exhausted.
func (r *Resampler) pull(frame []float32) bool {
	for r.inPos+r.channels > r.inN {
		if r.srcDone {
			return false
		}

		n, err := r.src.ReadSamples(r.in)
		r.inN, r.inPos = n-n%r.channels, 0

		if err != nil {
			r.srcDone = true
			if !errors.Is(err, io.EOF) {
				r.srcErr = err
			}
		}
	}

	copy(frame, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	return true
}

func (r *Resampler) prime() bool {
	if !r.pull(r.win[1]) {
		return false
	}
	copy(r.win[0], r.win[1])
	r.real[1] = true

	for i := 2; i < len(r.win); i++ {
		r.real[i] = r.pull(r.win[i])
		if !r.real[i] {
			copy(r.win[i], r.win[i-1])
		}
	}

	return true
}

func (r *Resampler) shift() {
	oldest := r.win[0]
	r.win[0], r.win[1], r.win[2] = r.win[1], r.win[2], r.win[3]
	r.real[0], r.real[1], r.real[2] = r.real[1], r.real[2], r.real[3]
	r.win[3] = oldest

	r.real[3] = r.pull(r.win[3])
	if !r.real[3] {
		copy(r.win[3], r.win[2])
	}
}

func (r *Resampler) end() error {
	if r.srcErr != nil {
		return fmt.Errorf("resample: %w", r.srcErr)
	}

	return io.EOF
}

// ReadSamples fills dst with interleaved samples at the target rate.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.started {
		r.started = true
		r.live = r.prime()
	}
	if !r.live {
		return 0, r.end()
	}

	n := 0
	for n+r.channels <= len(dst) {
		for r.pos >= 1 {
			r.pos--
			r.shift()
		}
		if !r.real[1] {
			r.live = false
			return n, r.end()
		}

		t := float32(r.pos)
		for c := range r.channels {
			dst[n+c] = utils.CatmullRom(r.win[0][c], r.win[1][c], r.win[2][c], r.win[3][c], t)
		}

		n += r.channels
		r.pos += r.step
	}

	return n, nil
}
