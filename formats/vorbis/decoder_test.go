// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"
)

// mockOggReader simulates oggvorbis.Reader; Read returns sample counts
// like the real reader does
type mockOggReader struct {
	sampleRate int
	channels   int
	samples    []float32
}

func (m *mockOggReader) SampleRate() int { return m.sampleRate }
func (m *mockOggReader) Channels() int   { return m.channels }

func (m *mockOggReader) Read(buf []float32) (int, error) {
	if len(m.samples) == 0 {
		return 0, io.EOF
	}

	n := copy(buf, m.samples)
	m.samples = m.samples[n:]

	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{[]byte("This is not Ogg data"), nil} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); !errors.Is(err, ErrNotVorbis) {
			t.Errorf("Decode(%q) error = %v, want ErrNotVorbis", data, err)
		}
	}
}

func TestStream_Metadata(t *testing.T) {
	t.Parallel()

	s := &stream{dec: &mockOggReader{sampleRate: 48000, channels: 2}}

	if s.SampleRate() != 48000 {
		t.Errorf("SampleRate() = %d, want 48000", s.SampleRate())
	}
	if s.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", s.Channels())
	}
}

func TestStream_ReadSamples(t *testing.T) {
	t.Parallel()

	want := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}
	s := &stream{dec: &mockOggReader{sampleRate: 8000, channels: 2, samples: slices.Clone(want)}}

	var got []float32
	// 5 slots, only 4 usable as whole stereo frames
	dst := make([]float32, 5)
	for {
		n, err := s.ReadSamples(dst)
		if n%2 != 0 {
			t.Fatalf("ReadSamples() n = %d, not whole frames", n)
		}
		got = append(got, dst[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if !slices.Equal(got, want) {
		t.Errorf("samples = %v, want %v", got, want)
	}
}

func TestStream_ReadSamples_TooSmall(t *testing.T) {
	t.Parallel()

	s := &stream{dec: &mockOggReader{sampleRate: 8000, channels: 2, samples: []float32{1, 1}}}

	if n, err := s.ReadSamples(make([]float32, 1)); n != 0 || err != nil {
		t.Errorf("ReadSamples() = (%d, %v), want (0, nil)", n, err)
	}
}
