// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"fmt"
	"time"
)

// Data is a decoded waveform summary.
type Data struct {
	Version         int
	Channels        int
	SampleRate      int
	SamplesPerPixel int
	Bits            int
	Length          int

	// Samples holds Length*Channels min/max pairs, interleaved by channel.
	Samples []int16
}

// Validate checks the header fields against each other and the sample
// count.
func (d *Data) Validate() error {
	if d.Version != 1 && d.Version != 2 {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, d.Version)
	}
	if d.Bits != 8 && d.Bits != 16 {
		return fmt.Errorf("%w: got %d", ErrInvalidBits, d.Bits)
	}
	if d.Channels < 1 || d.SampleRate <= 0 || d.SamplesPerPixel <= 0 || d.Length < 0 {
		return fmt.Errorf("%w: channels=%d sample_rate=%d samples_per_pixel=%d length=%d",
			ErrInvalidHeader, d.Channels, d.SampleRate, d.SamplesPerPixel, d.Length)
	}
	if d.Version == 1 && d.Channels != 1 {
		return fmt.Errorf("%w: version 1 carries a single channel", ErrInvalidHeader)
	}
	if want := d.Length * d.Channels * 2; len(d.Samples) != want {
		return fmt.Errorf("%w: have %d samples, want %d", ErrTruncated, len(d.Samples), want)
	}

	return nil
}

// Min returns the minimum value of channel ch at index i.
func (d *Data) Min(ch, i int) int16 {
	return d.Samples[(i*d.Channels+ch)*2]
}

// Max returns the maximum value of channel ch at index i.
func (d *Data) Max(ch, i int) int16 {
	return d.Samples[(i*d.Channels+ch)*2+1]
}

// PixelsPerSecond is the number of indexes per second of audio.
func (d *Data) PixelsPerSecond() float64 {
	return float64(d.SampleRate) / float64(d.SamplesPerPixel)
}

// Duration of the audio the waveform summarizes.
func (d *Data) Duration() time.Duration {
	seconds := float64(d.Length) * float64(d.SamplesPerPixel) / float64(d.SampleRate)
	return time.Duration(seconds * float64(time.Second))
}
