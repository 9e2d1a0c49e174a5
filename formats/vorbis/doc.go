// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio into an audio.Source using
// github.com/jfreymuth/oggvorbis.
//
// Channel count and sample rate come from the Vorbis identification
// header. Samples are already float32 in [-1.0, 1.0] and are passed
// through without conversion.
package vorbis
