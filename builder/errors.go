// SPDX-License-Identifier: EPL-2.0

package builder

import (
	"errors"
	"fmt"
)

var (
	ErrConfigurationConflict   = errors.New("only one source may be given: remote, local or audio")
	ErrNoSource                = errors.New("a remote, local or audio source is required")
	ErrInvalidAudioSource      = errors.New("audio source needs a decoded buffer, or decoders and a media element")
	ErrEnvironmentIncompatible = errors.New("unable to determine a compatible remote waveform format")
	ErrFormatIncompatible      = errors.New("unable to determine a compatible local waveform format")
	ErrUnsupportedWaveform     = errors.New("unsupported waveform")
	ErrTransportStatus         = errors.New("unable to fetch remote data")
	ErrTransportFailure        = errors.New("transport failed")
	ErrTransportAborted        = errors.New("transport aborted")
	ErrDecodeFailure           = errors.New("decode failed")
)

var (
	errChannels = fmt.Errorf("%w: only mono or stereo waveforms are currently supported", ErrUnsupportedWaveform)
	errBits     = fmt.Errorf("%w: 16-bit waveform data is not supported", ErrUnsupportedWaveform)
)

// StatusError reports a response whose status was not accepted.
// It matches ErrTransportStatus.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP status %d", ErrTransportStatus, e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrTransportStatus
}
