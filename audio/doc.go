// SPDX-License-Identifier: EPL-2.0

// Package audio holds the PCM primitives the waveform generator reads from.
//
// Every decoder and processor implements Source, so they chain:
//
//	src, _ := decoder.Decode(bytes.NewReader(data))
//	mono := audio.NewMonoMixer(src)
//	out := audio.NewResampler(mono, 8000)
//
// Samples are interleaved float32 values in [-1, 1]. ReadSamples returns
// io.EOF once the stream is drained; n may be non-zero on the final read.
//
// # Formats
//
// Registry maps container keys (FormatWAV, FormatMP3, FormatVorbis,
// FormatAIFF) to decoders. Detect sniffs the leading bytes of a payload
// and returns the matching decoder:
//
//	dec, format, err := registry.Detect(data)
//
// # In-memory audio
//
// Buffer holds an already decoded asset. ReadAll drains any Source into one.
//
// # Processing
//
// MonoMixer averages each frame into one channel. Resampler converts the
// sample rate with Catmull-Rom interpolation and keeps the channel count.
package audio
