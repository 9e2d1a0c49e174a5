// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

// ErrNotVorbis wraps the oggvorbis error when the Ogg stream has no
// Vorbis headers.
var ErrNotVorbis = errors.New("not an Ogg Vorbis stream")
