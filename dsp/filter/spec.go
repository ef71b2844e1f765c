// SPDX-License-Identifier: EPL-2.0

package filter

import "fmt"

// Kind selects the response shape.
type Kind int

const (
	HighPass Kind = iota
	LowPass
	Notch
)

func (k Kind) String() string {
	switch k {
	case HighPass:
		return "highpass"
	case LowPass:
		return "lowpass"
	case Notch:
		return "notch"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

const (
	// MaxOrder caps Butterworth designs; higher orders lose precision in SOS form.
	MaxOrder = 16

	// DefaultNotchQ gives a bandwidth of 2 Hz at 60 Hz.
	DefaultNotchQ = 30.0

	// MaxNotchFraction of Nyquist a hum candidate may sit at before it is rejected.
	MaxNotchFraction = 0.45
)

// Spec describes a filter to design. Order is ignored for Notch and Q is
// ignored for HighPass and LowPass.
type Spec struct {
	Kind     Kind
	CutoffHz float64
	Order    int
	Q        float64
}

func (s Spec) String() string {
	if s.Kind == Notch {
		return fmt.Sprintf("%s %.1f Hz Q=%.1f", s.Kind, s.CutoffHz, s.Q)
	}
	return fmt.Sprintf("%s %.1f Hz order %d", s.Kind, s.CutoffHz, s.Order)
}

// NotchCandidateValid reports whether a hum frequency can be notched at
// sampleRate without risking an unstable design.
func NotchCandidateValid(freq float64, sampleRate int) bool {
	if freq <= 0 || sampleRate <= 0 {
		return false
	}
	return freq <= MaxNotchFraction*float64(sampleRate)/2
}
