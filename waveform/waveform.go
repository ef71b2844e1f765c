// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// MaxBitDepth is the widest integer PCM the normalizer accepts.
const MaxBitDepth = 32

// Waveform is a mono floating-point signal. Samples normally sit in
// [-1, 1] but intermediate stages may push them outside.
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// Len returns the number of samples.
func (w Waveform) Len() int { return len(w.Samples) }

// Duration returns the length in seconds.
func (w Waveform) Duration() float64 {
	if w.SampleRate <= 0 {
		return 0
	}
	return float64(len(w.Samples)) / float64(w.SampleRate)
}

// Validate checks the waveform invariants.
func (w Waveform) Validate() error {
	if w.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	if len(w.Samples) == 0 {
		return ErrEmpty
	}
	return nil
}

// Clone returns a deep copy.
func (w Waveform) Clone() Waveform {
	return Waveform{Samples: append([]float64(nil), w.Samples...), SampleRate: w.SampleRate}
}

// Normalize converts signed integer PCM of the given bit width to a
// Waveform. Samples are divided by the signed full-scale value
// 2^(bitDepth-1) and hard-clipped to [-1, 1].
func Normalize(samples []int, bitDepth, sampleRate int) (Waveform, error) {
	if len(samples) == 0 {
		return Waveform{}, ErrEmpty
	}
	if bitDepth <= 0 || bitDepth > MaxBitDepth {
		return Waveform{}, ErrInvalidBitDepth
	}
	if sampleRate <= 0 {
		return Waveform{}, ErrInvalidSampleRate
	}

	fullScale := math.Exp2(float64(bitDepth - 1))
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s) / fullScale
	}
	Clip(out, 1)

	return Waveform{Samples: out, SampleRate: sampleRate}, nil
}

// PeakNormalized returns a copy scaled so the largest magnitude is 1.
// Silence is returned unchanged.
func (w Waveform) PeakNormalized() Waveform {
	out := w.Clone()
	if len(out.Samples) == 0 {
		return out
	}

	peak := floats.Norm(out.Samples, math.Inf(1))
	if peak == 0 || math.IsNaN(peak) || math.IsInf(peak, 0) {
		return out
	}

	floats.Scale(1/peak, out.Samples)
	return out
}

// Clip limits every sample to [-limit, limit] in place.
func Clip(samples []float64, limit float64) {
	for i, v := range samples {
		if v > limit {
			samples[i] = limit
		} else if v < -limit {
			samples[i] = -limit
		}
	}
}

// Pack8 converts clipped samples to signed 8-bit PCM by truncating x*127.
func Pack8(samples []float64) []int8 {
	out := make([]int8, len(samples))
	for i, v := range samples {
		v *= 127
		if v > 127 {
			v = 127
		} else if v < -128 {
			v = -128
		}
		out[i] = int8(v)
	}
	return out
}

// HasNonFinite reports whether any sample is NaN or infinite.
func HasNonFinite(samples []float64) bool {
	for _, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
