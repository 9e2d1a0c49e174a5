// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrUnknownFormat  = errors.New("unknown audio container")
	ErrNoDecoder      = errors.New("no decoder registered for format")
	ErrInvalidBuffer  = errors.New("buffer length must be multiple of channels")
)
