// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
)

// WAV16 returns a canonical 44-byte-header PCM 16-bit WAV file holding the
// interleaved samples.
func WAV16(sampleRate, channels int, samples []int16) []byte {
	numChannels := uint16(channels)
	bitsPerSample := uint16(16)
	byteRate := uint32(sampleRate) * uint32(numChannels) * uint32(bitsPerSample/8)
	blockAlign := numChannels * (bitsPerSample / 8)
	dataSize := uint32(len(samples) * 2)

	out := make([]byte, 44+len(samples)*2)

	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], 36+dataSize)
	copy(out[8:12], "WAVE")

	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(out[22:24], numChannels)
	binary.LittleEndian.PutUint32(out[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:32], byteRate)
	binary.LittleEndian.PutUint16(out[32:34], blockAlign)
	binary.LittleEndian.PutUint16(out[34:36], bitsPerSample)

	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], dataSize)

	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[44+i*2:], uint16(s))
	}

	return out
}

// Ramp returns frames*channels interleaved samples rising linearly from
// -peak to +peak on every channel.
func Ramp(frames, channels int, peak int16) []int16 {
	out := make([]int16, frames*channels)
	if frames < 2 {
		return out
	}

	for f := range frames {
		v := int16(-int(peak) + (2*int(peak)*f)/(frames-1))
		for ch := range channels {
			out[f*channels+ch] = v
		}
	}

	return out
}
