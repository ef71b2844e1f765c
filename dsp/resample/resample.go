// SPDX-License-Identifier: EPL-2.0

package resample

import (
	"fmt"
	"math"
	"slices"
)

// OutputLen is the number of samples Resample produces for n input samples.
func OutputLen(n, from, to int) int {
	return int(math.Round(float64(n) * float64(to) / float64(from)))
}

// Resample converts x from one sample rate to another. The output has
// OutputLen(len(x), from, to) samples. Equal rates return a copy.
func Resample(x []float64, from, to int, q Quality) ([]float64, error) {
	if from <= 0 || to <= 0 {
		return nil, fmt.Errorf("%w: %d -> %d", ErrUnsupportedRate, from, to)
	}
	if from == to {
		return slices.Clone(x), nil
	}

	m := OutputLen(len(x), from, to)
	if len(x) == 0 || m == 0 {
		return []float64{}, nil
	}

	switch q {
	case Fast:
		return fourier(x, m, false), nil
	case Medium:
		return polyphase(x, from, to, m), nil
	case High:
		return fourier(x, m, true), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownQuality, q)
}
