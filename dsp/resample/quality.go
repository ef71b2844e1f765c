// SPDX-License-Identifier: EPL-2.0

package resample

import (
	"fmt"
	"strings"
)

// Quality selects the resampling algorithm.
type Quality int

const (
	// Fast resamples in the Fourier domain over the whole signal.
	Fast Quality = iota
	// Medium uses a polyphase windowed-sinc filter for simple ratios and
	// cubic interpolation otherwise.
	Medium
	// High resamples in the Fourier domain with a tapered band edge.
	High
)

func (q Quality) String() string {
	switch q {
	case Fast:
		return "fast"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return fmt.Sprintf("Quality(%d)", int(q))
	}
}

// ParseQuality maps a case-insensitive name to its Quality.
func ParseQuality(name string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fast", "":
		return Fast, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	}
	return Fast, fmt.Errorf("%w: %q", ErrUnknownQuality, name)
}

// UnmarshalText lets Quality be used directly as a flag or config value.
func (q *Quality) UnmarshalText(text []byte) error {
	v, err := ParseQuality(string(text))
	if err != nil {
		return err
	}
	*q = v
	return nil
}
