// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// FullScale returns 2^(bitDepth-1), the magnitude of the most negative
// sample representable at bitDepth.
func FullScale(bitDepth int) float64 {
	return math.Ldexp(1, bitDepth-1)
}

// IntToFloat maps a signed integer sample to [-1, 1).
func IntToFloat(v int, bitDepth int) float64 {
	return float64(v) / FullScale(bitDepth)
}

// FloatToInt maps x back to a signed integer sample at bitDepth.
// The result is rounded and clamped into [-2^(bitDepth-1), 2^(bitDepth-1)-1].
func FloatToInt(x float64, bitDepth int) int {
	fs := FullScale(bitDepth)
	v := math.Round(x * fs)

	// Clamp to the signed range; positive side stops one short of full scale
	if v > fs-1 {
		v = fs - 1
	} else if v < -fs {
		v = -fs
	}

	return int(v)
}
