// SPDX-License-Identifier: EPL-2.0

package waveform

import "errors"

var (
	ErrUnsupportedVersion = errors.New("unsupported waveform data version")
	ErrInvalidBits        = errors.New("waveform bits must be 8 or 16")
	ErrInvalidHeader      = errors.New("invalid waveform header")
	ErrTruncated          = errors.New("waveform data length does not match header")
	ErrInvalidScale       = errors.New("scale must be positive")
)
