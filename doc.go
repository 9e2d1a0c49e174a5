// SPDX-License-Identifier: EPL-2.0

// Package audwave obtains waveform summary data for audio assets.
//
// Waveform data is a list of min/max peak pairs per channel, one pair for
// every few hundred audio frames, in the audiowaveform binary or JSON format.
// It can be fetched precomputed from a server, parsed from memory, or
// generated from audio.
//
// # Quick Start
//
// The simplest way is the blocking Acquire helper:
//
//	b := builder.New()
//	data, err := audwave.Acquire(ctx, b, builder.Options{
//		Remote: &builder.RemoteSource{JSONURL: "https://example.com/track.json"},
//	})
//
// Generating peaks from an encoded file held in memory:
//
//	data, err := audwave.Generate(ctx, fileBytes, waveform.GenerateOptions{Scale: 512})
//
// # Packages
//
//   - builder picks and runs the acquisition strategy, with per-call
//     cancellation and a single callback
//   - transport performs cancellable HTTP GET requests
//   - waveform encodes, decodes and generates waveform data
//   - audio and formats/* decode WAV, MP3, Ogg Vorbis and AIFF into PCM
//   - observe records OpenTelemetry metrics
//   - config loads the YAML file used by cmd/audwave
//
// # Supported Formats
//
// Audio decoding is available for:
//   - WAV (PCM 8/16/24/32-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF via formats/aiff
//
// Remote and local waveform data must be mono or stereo with 8-bit
// samples; generated data is 8-bit unless GenerateOptions.Bits says
// otherwise.
package audwave
