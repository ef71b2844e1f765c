// SPDX-License-Identifier: EPL-2.0

package resample

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// TaperFraction of the retained band rolled off by a raised cosine in High.
const TaperFraction = 0.1

// fourier resamples x to m samples by truncating or zero-padding its
// spectrum. The Nyquist bin is split in two when growing and folded when
// shrinking so the result stays real.
func fourier(x []float64, m int, taper bool) []float64 {
	n := len(x)
	spec := fft.FFTReal(x)
	out := make([]complex128, m)

	keep := min(n, m)
	out[0] = spec[0]
	for k := 1; k <= (keep-1)/2; k++ {
		out[k] = spec[k]
		out[m-k] = spec[n-k]
	}
	if keep%2 == 0 && keep > 1 {
		k := keep / 2
		switch {
		case m < n:
			out[k] = spec[k] + spec[n-k]
		case m > n:
			out[k] = spec[k] / 2
			out[m-k] = spec[k] / 2
		default:
			out[k] = spec[k]
		}
	}

	if taper {
		raisedCosine(out, keep/2)
	}

	y := fft.IFFT(out)
	scale := float64(m) / float64(n)
	res := make([]float64, m)
	for i, c := range y {
		res[i] = real(c) * scale
	}
	return res
}

// raisedCosine attenuates the top TaperFraction of bins up to edge,
// applying the same gain to each positive bin and its mirror.
func raisedCosine(spec []complex128, edge int) {
	m := len(spec)
	width := int(math.Ceil(TaperFraction * float64(edge)))
	if width < 1 {
		return
	}
	start := edge - width
	for k := start + 1; k <= edge; k++ {
		g := complex(0.5*(1+math.Cos(math.Pi*float64(k-start)/float64(width+1))), 0)
		spec[k] *= g
		if m-k != k {
			spec[m-k] *= g
		}
	}
}
