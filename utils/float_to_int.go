// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a float sample in [-1, 1] to 16-bit PCM.
// Out of range values are clamped.
func Float32ToInt16(x float32) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for both signs so the scale stays symmetric
	return int16(x * 32767.0)
}

// Int8ToFloat32 rescales a packed 8-bit sample to [-1, 1] for device APIs
// that only accept floating-point buffers.
func Int8ToFloat32(s int8) float32 {
	return float32(s) / 127.0
}

// Int8ToInt16 widens a packed 8-bit sample to 16-bit PCM.
func Int8ToInt16(s int8) int16 {
	return int16(s) << 8
}
