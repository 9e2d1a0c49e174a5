// SPDX-License-Identifier: EPL-2.0

package builder

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/observe"
	"github.com/ik5/audwave/waveform"
)

type result struct {
	data *waveform.Data
	err  error
}

// recorder returns a callback that forwards outcomes and counts them.
func recorder() (Callback, <-chan result, *atomic.Int32) {
	ch := make(chan result, 4)
	var calls atomic.Int32

	return func(d *waveform.Data, err error) {
		calls.Add(1)
		ch <- result{data: d, err: err}
	}, ch, &calls
}

func await(t *testing.T, ch <-chan result) result {
	t.Helper()

	select {
	case r := <-ch:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("callback not invoked within 5s")
		return result{}
	}
}

func newTestBuilder(t *testing.T, opts ...Option) (*Builder, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	base := []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(m),
	}

	return New(append(base, opts...)...), reader
}

// server counts hits and serves body with status and headers.
type server struct {
	*httptest.Server
	hits   atomic.Int32
	accept atomic.Value
}

func newServer(t *testing.T, status int, header http.Header, body []byte) *server {
	t.Helper()

	s := &server{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		s.accept.Store(r.Header.Get("Accept"))
		for k, v := range header {
			w.Header()[k] = v
		}
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(s.Close)

	return s
}

// blockingServer holds every request open until the client goes away.
func blockingServer(t *testing.T) (*httptest.Server, <-chan struct{}) {
	t.Helper()

	started := make(chan struct{})
	var once sync.Once

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(started) })
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	return srv, started
}

func mono8(length int) *waveform.Data {
	d := &waveform.Data{
		Version:         2,
		Channels:        1,
		SampleRate:      44100,
		SamplesPerPixel: 512,
		Bits:            8,
		Length:          length,
		Samples:         make([]int16, length*2),
	}
	for i := range length {
		d.Samples[i*2] = int16(-i)
		d.Samples[i*2+1] = int16(i)
	}

	return d
}

func encodeBinary(t *testing.T, d *waveform.Data) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := waveform.EncodeBinary(&buf, d); err != nil {
		t.Fatalf("EncodeBinary: %v", err)
	}

	return buf.Bytes()
}

func encodeJSON(t *testing.T, d *waveform.Data) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := waveform.EncodeJSON(&buf, d); err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}

	return buf.Bytes()
}

// fakeCodec records which decoder was used.
type fakeCodec struct {
	used  atomic.Value
	data  *waveform.Data
	panic bool
}

func (f *fakeCodec) DecodeBinary([]byte) (*waveform.Data, error) {
	f.used.Store("binary")
	if f.panic {
		panic("corrupt payload")
	}
	return f.data, nil
}

func (f *fakeCodec) DecodeJSON([]byte) (*waveform.Data, error) {
	f.used.Store("json")
	if f.panic {
		panic("corrupt payload")
	}
	return f.data, nil
}

// fakeDecoder records the options it was called with.
type fakeDecoder struct {
	mu   sync.Mutex
	opts []waveform.GenerateOptions
	err  error
}

func (f *fakeDecoder) record(opts waveform.GenerateOptions) (*waveform.Data, error) {
	f.mu.Lock()
	f.opts = append(f.opts, opts)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return mono8(1), nil
}

func (f *fakeDecoder) FromSource(_ context.Context, _ audio.Source, opts waveform.GenerateOptions) (*waveform.Data, error) {
	return f.record(opts)
}

func (f *fakeDecoder) FromBytes(_ context.Context, _ audio.Detector, _ []byte, opts waveform.GenerateOptions) (*waveform.Data, error) {
	return f.record(opts)
}

func (f *fakeDecoder) calls() []waveform.GenerateOptions {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]waveform.GenerateOptions(nil), f.opts...)
}

type staticMedia string

func (m staticMedia) CurrentSrc() string { return string(m) }

// lateMedia has no source until ready is called.
type lateMedia struct {
	mu       sync.Mutex
	src      string
	pending  func()
	waiting  chan struct{}
	released chan struct{}
	once     sync.Once
}

func newLateMedia() *lateMedia {
	return &lateMedia{waiting: make(chan struct{}), released: make(chan struct{})}
}

func (m *lateMedia) CurrentSrc() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.src
}

func (m *lateMedia) OnceReady(fn func()) func() {
	m.mu.Lock()
	m.pending = fn
	m.mu.Unlock()
	close(m.waiting)

	return func() {
		m.once.Do(func() {
			m.mu.Lock()
			m.pending = nil
			m.mu.Unlock()
			close(m.released)
		})
	}
}

// subscribed reports whether a ready callback is still registered.
func (m *lateMedia) subscribed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.pending != nil
}

func (m *lateMedia) ready(src string) {
	m.mu.Lock()
	m.src = src
	fn := m.pending
	m.pending = nil
	m.mu.Unlock()

	if fn != nil {
		fn()
	}
}

type nopDetector struct{}

func (nopDetector) Detect([]byte) (audio.Decoder, string, error) {
	return nil, "", audio.ErrUnknownFormat
}
