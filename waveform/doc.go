// SPDX-License-Identifier: EPL-2.0

// Package waveform holds min/max waveform summaries in the audiowaveform
// data format and the code that produces them.
//
// # Data Format
//
// A waveform is a series of (min, max) pairs, one pair per channel for every
// SamplesPerPixel input frames. Pairs are stored interleaved by channel:
//
//	index 0: ch0 min, ch0 max, ch1 min, ch1 max, ...
//	index 1: ch0 min, ch0 max, ...
//
// The binary encoding is little endian:
//
//	int32  version (1 or 2)
//	uint32 flags (bit 0 set: 8-bit samples, clear: 16-bit)
//	int32  sample rate
//	int32  samples per pixel
//	uint32 length (number of indexes)
//	int32  channels (version 2 only)
//	...    length * channels * 2 samples (int8 or int16)
//
// The JSON encoding carries the same fields (version, channels,
// sample_rate, samples_per_pixel, bits, length, data).
//
// # Generating Waveforms
//
// Generator computes a waveform from decoded audio, either an audio.Source
// or encoded bytes resolved through an audio.Detector:
//
//	data, err := waveform.Generator{}.FromSource(ctx, src, waveform.GenerateOptions{
//	    Scale: 512,
//	})
package waveform
