// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/ik5/audwave/internal/audiotest"
)

func TestNewBuffer_InvalidLength(t *testing.T) {
	t.Parallel()

	if _, err := NewBuffer(8000, 2, []float32{0, 1, 2}); !errors.Is(err, ErrInvalidBuffer) {
		t.Errorf("NewBuffer() error = %v, want ErrInvalidBuffer", err)
	}

	if _, err := NewBuffer(8000, 0, nil); !errors.Is(err, ErrInvalidBuffer) {
		t.Errorf("NewBuffer() with zero channels error = %v, want ErrInvalidBuffer", err)
	}
}

func TestBuffer_ReadSamples(t *testing.T) {
	t.Parallel()

	data := []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}
	buf, err := NewBuffer(8000, 2, data)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}

	if buf.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", buf.Frames())
	}

	// Odd-sized dst is trimmed to whole frames.
	dst := make([]float32, 3)
	n, err := buf.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 2 {
		t.Fatalf("ReadSamples() n = %d, want 2", n)
	}

	dst = make([]float32, 8)
	n, err = buf.ReadSamples(dst)
	if err != io.EOF {
		t.Errorf("ReadSamples() error = %v, want io.EOF", err)
	}
	if !slices.Equal(dst[:n], data[2:]) {
		t.Errorf("ReadSamples() = %v, want %v", dst[:n], data[2:])
	}

	if n, err := buf.ReadSamples(dst); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after drain = (%d, %v), want (0, EOF)", n, err)
	}

	buf.Rewind()
	if n, _ := buf.ReadSamples(dst); n != len(data) {
		t.Errorf("ReadSamples() after Rewind n = %d, want %d", n, len(data))
	}
}

func TestReadAll(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(16000, 2, 10000, 0.25)

	buf, err := ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if !src.Closed() {
		t.Error("ReadAll() did not close the source")
	}
	if buf.SampleRate() != 16000 || buf.Channels() != 2 {
		t.Errorf("ReadAll() format = %d Hz/%d ch, want 16000 Hz/2 ch", buf.SampleRate(), buf.Channels())
	}
	if buf.Frames() != 10000 {
		t.Errorf("ReadAll() frames = %d, want 10000", buf.Frames())
	}
}
