// SPDX-License-Identifier: EPL-2.0

package resample

import (
	"math"

	"github.com/ik5/retrocrush/utils"
	"github.com/mjibson/go-dsp/window"
)

const (
	// MaxPolyphaseFactor is the largest reduced up or down factor handled
	// by the polyphase filter. Larger ratios fall back to cubic interpolation.
	MaxPolyphaseFactor = 1024

	// zeroCrossings of the windowed sinc on each side of its centre.
	zeroCrossings = 10
)

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// lowpassFIR returns a Hamming-windowed sinc with normalised cutoff fc
// (1 = Nyquist) and half-length half taps on either side of the centre.
func lowpassFIR(fc float64, half int) []float64 {
	h := window.Hamming(2*half + 1)
	for i := range h {
		t := fc * float64(i-half)
		s := 1.0
		if t != 0 {
			s = math.Sin(math.Pi*t) / (math.Pi * t)
		}
		h[i] *= fc * s
	}
	return h
}

// polyphase resamples by the reduced ratio up/down: x is conceptually
// zero-stuffed by up, low-passed and decimated by down, computing only
// the taps that touch real input samples.
func polyphase(x []float64, from, to, m int) []float64 {
	g := gcd(from, to)
	up, down := to/g, from/g
	factor := max(up, down)
	if factor > MaxPolyphaseFactor {
		return cubic(x, from, to, m)
	}

	half := zeroCrossings * factor
	h := lowpassFIR(1/float64(factor), half)
	gain := float64(up)

	n := len(x)
	out := make([]float64, m)
	for j := range out {
		// position of output j on the upsampled grid, centred on the filter
		t := j*down + half
		lo := max(0, (t-len(h)+up)/up)
		hi := min(n-1, t/up)

		var acc float64
		for i := lo; i <= hi; i++ {
			k := t - i*up
			if k < 0 || k >= len(h) {
				continue
			}
			acc += h[k] * x[i]
		}
		out[j] = acc * gain
	}
	return out
}

// cubic band-limits x when decimating and then reads it at fractional
// positions with Catmull-Rom interpolation.
func cubic(x []float64, from, to, m int) []float64 {
	src := x
	if to < from {
		ratio := float64(to) / float64(from)
		half := int(math.Ceil(zeroCrossings / ratio))
		src = convolveSame(x, lowpassFIR(ratio, half))
	}

	step := float64(from) / float64(to)
	out := make([]float64, m)
	for j := range out {
		out[j] = utils.CubicAt(src, float64(j)*step)
	}
	return out
}

// convolveSame filters x with a symmetric odd-length kernel, keeping the
// input length and alignment.
func convolveSame(x, h []float64) []float64 {
	half := len(h) / 2
	n := len(x)
	out := make([]float64, n)
	for i := range out {
		lo := max(0, i-half)
		hi := min(n-1, i+half)
		var acc float64
		for j := lo; j <= hi; j++ {
			acc += x[j] * h[i-j+half]
		}
		out[i] = acc
	}
	return out
}
