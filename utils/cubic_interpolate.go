// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate performs cubic interpolation
// x is the fractional position between y1 and y2 (0 <= x <= 1)
// y0, y1, y2, y3 are four consecutive samples
func CubicInterpolate(y0, y1, y2, y3, x float64) float64 {
	// Catmull-Rom spline interpolation
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return ((a0*x+a1)*x+a2)*x + a3
}

// CubicAt samples x at fractional index pos, clamping the four-point
// neighbourhood to the slice bounds.
func CubicAt(x []float64, pos float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}

	i := int(pos)
	frac := pos - float64(i)

	at := func(k int) float64 {
		if k < 0 {
			return x[0]
		}
		if k >= n {
			return x[n-1]
		}
		return x[k]
	}

	return CubicInterpolate(at(i-1), at(i), at(i+1), at(i+2), frac)
}
