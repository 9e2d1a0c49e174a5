// SPDX-License-Identifier: EPL-2.0

package audwave

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/builder"
	"github.com/ik5/audwave/internal/audiotest"
	"github.com/ik5/audwave/waveform"
)

type fixedMedia string

func (m fixedMedia) CurrentSrc() string { return string(m) }

// pendingMedia never selects a source.
type pendingMedia struct{}

func (pendingMedia) CurrentSrc() string      { return "" }
func (pendingMedia) OnceReady(func()) func() { return nil }

func TestAcquire_Remote(t *testing.T) {
	t.Parallel()

	want := &waveform.Data{Version: 1, Channels: 1, SampleRate: 8000, SamplesPerPixel: 80, Bits: 8, Length: 2, Samples: []int16{-1, 1, -2, 2}}
	var payload bytes.Buffer
	if err := waveform.EncodeBinary(&payload, want); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(payload.Bytes())
	}))
	defer srv.Close()

	d, err := Acquire(context.Background(), builder.New(), builder.Options{
		Remote: &builder.RemoteSource{BinaryURL: srv.URL},
	})
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if d.Length != 2 || d.Max(0, 1) != 2 {
		t.Errorf("Acquire() = %+v", d)
	}
}

func TestAcquire_ConfigurationError(t *testing.T) {
	t.Parallel()

	_, err := Acquire(context.Background(), builder.New(), builder.Options{})
	if !errors.Is(err, builder.ErrNoSource) {
		t.Errorf("Acquire() error = %v, want ErrNoSource", err)
	}
}

func TestAcquire_ContextDeadline(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Acquire(ctx, builder.New(), builder.Options{
		Remote: &builder.RemoteSource{JSONURL: srv.URL},
	})
	if !errors.Is(err, builder.ErrTransportAborted) {
		t.Errorf("Acquire() error = %v, want ErrTransportAborted", err)
	}
}

func TestAcquire_CancelledWhileMediaPending(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for range 20 {
		done := make(chan error, 1)
		go func() {
			_, err := Acquire(ctx, builder.New(), builder.Options{
				Audio: &builder.AudioSource{Decoders: nopDetector{}, Media: pendingMedia{}},
			})
			done <- err
		}()

		select {
		case err := <-done:
			if !errors.Is(err, builder.ErrTransportAborted) {
				t.Fatalf("Acquire() error = %v, want ErrTransportAborted", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("Acquire() did not return after its context ended")
		}
	}
}

func TestAcquire_MediaUnavailable(t *testing.T) {
	t.Parallel()

	_, err := Acquire(context.Background(), builder.New(), builder.Options{
		Audio: &builder.AudioSource{Decoders: nopDetector{}, Media: fixedMedia("")},
	})
	if !errors.Is(err, ErrMediaUnavailable) {
		t.Errorf("Acquire() error = %v, want ErrMediaUnavailable", err)
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	data := audiotest.WAV16(8000, 2, audiotest.Ramp(1000, 2, 8192))

	d, err := Generate(context.Background(), data, waveform.GenerateOptions{Scale: 250, SplitChannels: true})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if d.Channels != 2 || d.Length != 4 {
		t.Errorf("Generate() = channels %d length %d, want 2 and 4", d.Channels, d.Length)
	}
}

type nopDetector struct{}

func (nopDetector) Detect([]byte) (audio.Decoder, string, error) {
	return nil, "", audio.ErrUnknownFormat
}
