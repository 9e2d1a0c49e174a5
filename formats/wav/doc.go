// SPDX-License-Identifier: EPL-2.0

// Package wav decodes RIFF/WAVE files into an audio.Source.
//
// Decoding is delegated to github.com/go-audio/wav, so files with extra
// chunks (LIST, INFO, fact, ...) ahead of the sample data are accepted.
// Integer PCM at 8, 16, 24 and 32 bits per sample is supported, including
// WAVE_FORMAT_EXTENSIBLE files carrying integer PCM.
//
//	src, err := wav.Decoder{}.Decode(bytes.NewReader(data))
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
//
// Samples are returned interleaved as float32 values in [-1.0, 1.0].
// The decoder needs random access; plain readers are buffered in memory.
package wav
