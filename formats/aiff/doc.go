// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF and AIFF-C (uncompressed) files into an
// audio.Source using github.com/go-audio/aiff.
//
// Integer PCM at 8, 16, 24 and 32 bits is supported. go-audio needs to seek,
// so readers that are not io.ReadSeeker are buffered in memory first.
package aiff
