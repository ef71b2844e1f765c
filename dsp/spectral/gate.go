// SPDX-License-Identifier: EPL-2.0

package spectral

import (
	"cmp"
	"math"
	"math/cmplx"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// QuietFraction of frames, by mean magnitude, averaged into the noise profile.
const QuietFraction = 0.1

// Gate performs spectral subtraction on x. The noise profile is the mean
// magnitude spectrum of the quietest frames; strength times that profile is
// subtracted from every frame, floored at zero, and the signal is rebuilt
// with the original phase. The result has the same length as x.
func Gate(x []float64, windowSize int, strength float64) ([]float64, error) {
	if !(strength >= 0 && strength <= 1) {
		return nil, ErrInvalidStrength
	}
	if slices.ContainsFunc(x, nonFinite) {
		return nil, ErrNonFinite
	}

	s, err := STFT(x, windowSize)
	if err != nil {
		return nil, err
	}
	if strength == 0 {
		return slices.Clone(x), nil
	}

	profile := s.NoiseProfile()
	for _, frame := range s.Frames {
		for k, c := range frame {
			mag := cmplx.Abs(c)
			if mag == 0 {
				continue
			}
			reduced := max(mag-strength*profile[k], 0)
			frame[k] = c * complex(reduced/mag, 0)
		}
	}

	return s.ISTFT()
}

// NoiseProfile returns the per-bin mean magnitude over the QuietFraction of
// frames with the lowest average energy, using at least one frame.
func (s *Spectrogram) NoiseProfile() []float64 {
	type frameLevel struct {
		idx   int
		level float64
	}

	bins := s.WindowSize/2 + 1
	mags := make([][]float64, len(s.Frames))
	levels := make([]frameLevel, len(s.Frames))
	for f, frame := range s.Frames {
		mags[f] = make([]float64, bins)
		for k, c := range frame {
			mags[f][k] = cmplx.Abs(c)
		}
		levels[f] = frameLevel{idx: f, level: floats.Dot(mags[f], mags[f]) / float64(bins)}
	}

	slices.SortStableFunc(levels, func(a, b frameLevel) int {
		return cmp.Compare(a.level, b.level)
	})

	quiet := max(1, int(math.Floor(QuietFraction*float64(len(levels)))))
	profile := make([]float64, bins)
	for _, l := range levels[:quiet] {
		floats.Add(profile, mags[l.idx])
	}
	floats.Scale(1/float64(quiet), profile)

	return profile
}

func nonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
