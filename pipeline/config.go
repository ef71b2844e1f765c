// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"fmt"
	"math"
	"slices"

	"github.com/ik5/retrocrush/dsp/filter"
	"github.com/ik5/retrocrush/dsp/mulaw"
	"github.com/ik5/retrocrush/dsp/resample"
)

// Config holds every parameter of one conversion. It is passed by value
// and never modified by Run.
type Config struct {
	// InternalRate is the rate filtering and noise reduction run at.
	InternalRate int
	// OutputRate is the rate of the packed result.
	OutputRate int
	// BitDepth of the quantizer, 1..16.
	BitDepth int
	// Mu is the mu-law compression parameter.
	Mu float64
	// NoiseReductionStrength scales the spectral noise profile, 0..1.
	// Zero disables the spectral gate.
	NoiseReductionStrength float64

	ApplyNotch      bool
	NotchCandidates []float64
	NotchQ          float64

	HighPassHz  float64
	FilterOrder int
	// LowPassMaxHz caps the anti-alias cutoff, which is otherwise 45% of
	// OutputRate.
	LowPassMaxHz float64

	STFTWindowSize int
	Quality        resample.Quality
	// Seed for the dither generator. Zero picks a random seed per run.
	Seed uint64
	// PeakNormalize scales the input so its largest sample is full scale.
	PeakNormalize bool
}

// DefaultConfig returns the 4-bit, 11025 Hz conversion.
func DefaultConfig() Config {
	return Config{
		InternalRate:           44100,
		OutputRate:             11025,
		BitDepth:               4,
		Mu:                     255,
		NoiseReductionStrength: 0.8,
		ApplyNotch:             true,
		NotchCandidates:        []float64{50, 60},
		NotchQ:                 filter.DefaultNotchQ,
		HighPassHz:             80,
		FilterOrder:            4,
		LowPassMaxHz:           4000,
		STFTWindowSize:         2048,
		Quality:                resample.Fast,
		PeakNormalize:          true,
	}
}

// QuantizationLevels is 2^BitDepth, or 0 when BitDepth is out of range.
func (c Config) QuantizationLevels() int {
	l, err := mulaw.Levels(c.BitDepth)
	if err != nil {
		return 0
	}
	return l
}

// Candidates returns a copy of the notch frequencies.
func (c Config) Candidates() []float64 {
	return slices.Clone(c.NotchCandidates)
}

// AntiAliasCutoff is the low-pass cutoff applied before the final
// resample: the smaller of LowPassMaxHz and 45% of OutputRate.
func (c Config) AntiAliasCutoff() float64 {
	return min(c.LowPassMaxHz, 0.45*float64(c.OutputRate))
}

// Validate reports the first parameter that is out of range.
func (c Config) Validate() error {
	if c.InternalRate <= 0 || c.OutputRate <= 0 {
		return fmt.Errorf("%w: rates %d/%d: %w", ErrInvalidConfig, c.InternalRate, c.OutputRate, resample.ErrUnsupportedRate)
	}
	if _, err := mulaw.Levels(c.BitDepth); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if !(c.Mu > 0) || math.IsInf(c.Mu, 0) {
		return fmt.Errorf("%w: mu %v must be positive", ErrInvalidConfig, c.Mu)
	}
	if !(c.NoiseReductionStrength >= 0 && c.NoiseReductionStrength <= 1) {
		return fmt.Errorf("%w: noise reduction strength %v outside [0, 1]", ErrInvalidConfig, c.NoiseReductionStrength)
	}
	if c.ApplyNotch && (!(c.NotchQ > 0) || math.IsInf(c.NotchQ, 0)) {
		return fmt.Errorf("%w: notch Q %v must be positive", ErrInvalidConfig, c.NotchQ)
	}
	if c.FilterOrder < 1 || c.FilterOrder > filter.MaxOrder {
		return fmt.Errorf("%w: filter order %d outside [1, %d]", ErrInvalidConfig, c.FilterOrder, filter.MaxOrder)
	}
	if nyquist := float64(c.InternalRate) / 2; !(c.HighPassHz > 0 && c.HighPassHz < nyquist) {
		return fmt.Errorf("%w: high-pass cutoff %v outside (0, %v)", ErrInvalidConfig, c.HighPassHz, nyquist)
	}
	if !(c.LowPassMaxHz > 0) {
		return fmt.Errorf("%w: low-pass limit %v must be positive", ErrInvalidConfig, c.LowPassMaxHz)
	}
	if c.STFTWindowSize < 2 {
		return fmt.Errorf("%w: STFT window %d smaller than 2", ErrInvalidConfig, c.STFTWindowSize)
	}
	if c.Quality < resample.Fast || c.Quality > resample.High {
		return fmt.Errorf("%w: %w: %v", ErrInvalidConfig, resample.ErrUnknownQuality, c.Quality)
	}
	return nil
}
