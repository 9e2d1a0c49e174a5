// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt8 quantizes a sample in [-1,1] to a signed 8-bit peak value.
// Values are floored, so small negative samples land on -1 rather than 0.
func Float32ToInt8(x float32) int8 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int8(math.Floor(float64(x) * math.MaxInt8))
}

// Float32ToInt16 quantizes a sample in [-1,1] to a signed 16-bit peak value
// using the same flooring rule as Float32ToInt8.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(math.Floor(float64(x) * math.MaxInt16))
}

// Float32ToPeak quantizes x to a peak of the given bit depth (8 or 16).
func Float32ToPeak(x float32, bits int) int16 {
	if bits == 8 {
		return int16(Float32ToInt8(x))
	}

	return Float32ToInt16(x)
}
