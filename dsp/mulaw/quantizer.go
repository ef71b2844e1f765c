// SPDX-License-Identifier: EPL-2.0

package mulaw

import (
	"math"
	"math/rand/v2"
)

// MaxBitDepth supported by Levels.
const MaxBitDepth = 16

// Levels returns the number of quantization levels for bitDepth, 2^bitDepth.
func Levels(bitDepth int) (int, error) {
	if bitDepth < 1 || bitDepth > MaxBitDepth {
		return 0, ErrInvalidBitDepth
	}
	return 1 << bitDepth, nil
}

// Quantizer rounds samples in [-1, 1] to a fixed number of evenly spaced
// levels after adding triangular dither. The level set is symmetric about
// zero and spans the full [-1, 1] range. With more than two levels zero is
// itself a level, so a silent input stays silent; two levels map every
// sample to -1 or 1. A Quantizer is not safe for concurrent use.
type Quantizer struct {
	levels int
	scale  float64
	rng    *rand.Rand
}

// NewQuantizer returns a Quantizer with the given number of levels. A zero
// seed draws a random one.
func NewQuantizer(levels int, seed uint64) (*Quantizer, error) {
	if levels < 2 || levels%2 != 0 {
		return nil, ErrInvalidLevels
	}
	if seed == 0 {
		seed = rand.Uint64()
	}

	return &Quantizer{
		levels: levels,
		scale:  max(1, float64(levels)/2-1),
		rng:    rand.New(rand.NewPCG(seed, seed^0xda3e39cb94b95bdb)),
	}, nil
}

// Levels returns the number of output levels.
func (q *Quantizer) Levels() int { return q.levels }

// Dither returns triangular noise with peak amplitude 0.5/levels.
func (q *Quantizer) Dither() float64 {
	return (q.rng.Float64() - q.rng.Float64()) * 0.5 / float64(q.levels)
}

// Step maps x to its signed level index without dither. Indices lie in
// [-(levels/2-1), levels/2-1], or are -1 and 1 when there are two levels.
func (q *Quantizer) Step(x float64) int {
	if q.levels == 2 {
		i := math.Round(max(0, min(1, (x+1)/2)))
		return 2*int(i) - 1
	}
	s := math.Round(x * q.scale)
	return int(max(-q.scale, min(q.scale, s)))
}

// Quantize dithers x and returns the value of the nearest level.
func (q *Quantizer) Quantize(x float64) float64 {
	return float64(q.Step(x+q.Dither())) / q.scale
}

// QuantizeAll quantizes every sample of x into a new slice.
func (q *Quantizer) QuantizeAll(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = q.Quantize(v)
	}
	return out
}
