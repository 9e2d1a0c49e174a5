// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio into an audio.Source.
//
// Decoding is delegated to github.com/hajimehoshi/go-mp3, which always
// emits 16-bit stereo; mono files are therefore reported as two identical
// channels.
//
//	src, err := mp3.Decoder{}.Decode(r)
//	if errors.Is(err, mp3.ErrNotMP3) {
//	    // no MPEG frames
//	}
package mp3
