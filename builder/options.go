// SPDX-License-Identifier: EPL-2.0

package builder

import (
	"context"

	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/waveform"
)

// Callback receives the outcome of an acquisition. Exactly one of the
// arguments is non-nil.
type Callback func(*waveform.Data, error)

// Options configures a single acquisition. Exactly one of Remote, Local
// and Audio must be set.
type Options struct {
	Remote *RemoteSource
	Local  *LocalSource
	Audio  *AudioSource

	// WithCredentials sends cookies and authorization on network requests.
	WithCredentials bool

	// ZoomLevels lists the scales the consumer will display. The first
	// one is used when generating waveform data from audio.
	ZoomLevels []int

	// Deprecated: set Audio.Decoders instead.
	Decoders audio.Detector
}

// RemoteSource points at precomputed waveform data on a server.
type RemoteSource struct {
	BinaryURL string
	JSONURL   string
}

// LocalSource holds precomputed waveform data in memory. JSON is used
// when it holds a JSON object, Binary otherwise.
type LocalSource struct {
	JSON   []byte
	Binary []byte
}

// AudioSource generates waveform data from audio. Buffer is used directly
// when set. Otherwise the audio behind Media is fetched and decoded with
// Decoders.
type AudioSource struct {
	Buffer   audio.Source
	Decoders audio.Detector
	Media    MediaElement

	MultiChannel bool
	Scale        int
	// SampleRate resamples decoded audio before peaks are taken. Zero keeps
	// the decoded rate.
	SampleRate int
}

// Capabilities lists the remote waveform formats the consumer can handle.
type Capabilities struct {
	Binary bool
	JSON   bool
}

// MediaElement exposes the URL of the media the host has selected.
type MediaElement interface {
	CurrentSrc() string
}

// ReadyNotifier is implemented by media elements that can tell when their
// source has been selected. fn is called at most once. The returned release
// func, which may be nil, drops the subscription; it must be safe to call
// after fn has run.
type ReadyNotifier interface {
	OnceReady(fn func()) (release func())
}

// Codec parses precomputed waveform payloads.
type Codec interface {
	DecodeBinary([]byte) (*waveform.Data, error)
	DecodeJSON([]byte) (*waveform.Data, error)
}

// AudioDecoder turns audio into waveform data.
type AudioDecoder interface {
	FromSource(ctx context.Context, src audio.Source, opts waveform.GenerateOptions) (*waveform.Data, error)
	FromBytes(ctx context.Context, det audio.Detector, data []byte, opts waveform.GenerateOptions) (*waveform.Data, error)
}

const defaultScale = 512

func (o Options) scale(src *AudioSource) int {
	if len(o.ZoomLevels) > 0 {
		return o.ZoomLevels[0]
	}
	if src.Scale > 0 {
		return src.Scale
	}

	return defaultScale
}
