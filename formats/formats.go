// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled container decoder into a registry
// keyed by the names audio.Sniff returns.
package formats

import (
	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/formats/aiff"
	"github.com/ik5/audwave/formats/mp3"
	"github.com/ik5/audwave/formats/vorbis"
	"github.com/ik5/audwave/formats/wav"
)

// NewRegistry returns a registry holding the WAV, MP3, Ogg Vorbis and AIFF
// decoders.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register(audio.FormatWAV, wav.Decoder{})
	reg.Register(audio.FormatMP3, mp3.Decoder{})
	reg.Register(audio.FormatVorbis, vorbis.Decoder{})
	reg.Register(audio.FormatAIFF, aiff.Decoder{})

	return reg
}
