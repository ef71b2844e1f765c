// SPDX-License-Identifier: EPL-2.0

package mulaw

import "math"

// Encode compresses x, clamped to [-1, 1], with the mu-law curve.
func Encode(x, mu float64) float64 {
	x = max(-1, min(1, x))
	return math.Copysign(math.Log1p(mu*math.Abs(x))/math.Log1p(mu), x)
}

// Decode is the inverse of Encode.
func Decode(y, mu float64) float64 {
	return math.Copysign(math.Expm1(math.Abs(y)*math.Log1p(mu))/mu, y)
}

// EncodeAll returns Encode applied to every sample of x.
func EncodeAll(x []float64, mu float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = Encode(v, mu)
	}
	return out
}

// DecodeAll returns Decode applied to every sample of y.
func DecodeAll(y []float64, mu float64) []float64 {
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = Decode(v, mu)
	}
	return out
}

// Smooth3 is a 3-tap moving average with zero padding at both ends. The
// output has the same length as x.
func Smooth3(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	for i := range out {
		sum := x[i]
		if i > 0 {
			sum += x[i-1]
		}
		if i < n-1 {
			sum += x[i+1]
		}
		out[i] = sum / 3
	}
	return out
}
