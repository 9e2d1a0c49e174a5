// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audwave/audio"
)

// go-mp3 always produces 16-bit little-endian stereo frames.
const (
	outputChannels = 2
	bytesPerSample = 2
)

// frameReader is the part of gomp3.Decoder used by stream; tests mock it.
type frameReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type stream struct {
	dec     frameReader
	pending []byte // trailing odd byte from the previous read
	buf     []byte
}

func (s *stream) SampleRate() int { return s.dec.SampleRate() }
func (s *stream) Channels() int   { return outputChannels }
func (s *stream) BufSize() int    { return cap(s.buf) / bytesPerSample }
func (s *stream) Close() error    { return nil }

func (s *stream) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	carried := copy(s.buf, s.pending)
	s.pending = s.pending[:0]

	n, err := s.dec.Read(s.buf[carried:])
	n += carried

	samples := n / bytesPerSample
	if rem := n % bytesPerSample; rem != 0 {
		s.pending = append(s.pending, s.buf[n-rem:n]...)
	}

	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[i*bytesPerSample:]))
		dst[i] = float32(v) / 32768.0
	}

	if samples == 0 && err == nil {
		// go-mp3 may return an empty read between frames
		return 0, nil
	}

	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3, err)
	}

	return &stream{
		dec: dec,
		buf: make([]byte, 8192),
	}, nil
}
