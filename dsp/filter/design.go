// SPDX-License-Identifier: EPL-2.0

package filter

import (
	"math"
	"math/cmplx"
)

// Section is one biquad in transposed direct form II: b0 b1 b2 a0 a1 a2,
// with a0 always 1.
type Section [6]float64

// Filter is a designed IIR filter stored as cascaded second-order sections.
type Filter struct {
	spec       Spec
	sampleRate int
	sections   []Section
}

// Design computes coefficients for spec at sampleRate.
func Design(spec Spec, sampleRate int) (*Filter, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	nyquist := float64(sampleRate) / 2
	if !(spec.CutoffHz > 0 && spec.CutoffHz < nyquist) {
		return nil, ErrInvalidCutoff
	}
	wn := spec.CutoffHz / nyquist

	var sections []Section
	switch spec.Kind {
	case HighPass, LowPass:
		if spec.Order < 1 || spec.Order > MaxOrder {
			return nil, ErrInvalidOrder
		}
		sections = butterworth(spec.Kind, spec.Order, wn)
	case Notch:
		if !(spec.Q > 0) || math.IsInf(spec.Q, 0) {
			return nil, ErrInvalidQ
		}
		sections = []Section{notch(wn, spec.Q)}
	default:
		return nil, ErrUnknownKind
	}

	for _, s := range sections {
		if !s.stable() {
			return nil, ErrUnstable
		}
	}

	return &Filter{spec: spec, sampleRate: sampleRate, sections: sections}, nil
}

// butterworth builds the digital Butterworth filter from the analog
// prototype using the pre-warped bilinear transform. Conjugate pole pairs
// become biquads; an odd order adds one first-order section.
func butterworth(kind Kind, order int, wn float64) []Section {
	const fs2 = 4.0 // bilinear constant for a normalized sampling rate of 2
	warped := fs2 * math.Tan(math.Pi*wn/2)

	bilinear := func(k int) complex128 {
		theta := math.Pi * float64(2*k+order+1) / float64(2*order)
		p := cmplx.Rect(1, theta)
		if kind == LowPass {
			p *= complex(warped, 0)
		} else {
			p = complex(warped, 0) / p
		}
		return (fs2 + p) / (fs2 - p)
	}

	// zeros sit at z=-1 for lowpass and z=+1 for highpass; unity gain is
	// normalized at the opposite end of the spectrum
	zero, ref := -1.0, 1.0
	if kind == HighPass {
		zero, ref = 1.0, -1.0
	}

	sections := make([]Section, 0, (order+1)/2)
	for k := range order / 2 {
		pd := bilinear(k)
		s := Section{1, -2 * zero, 1, 1, -2 * real(pd), real(pd)*real(pd) + imag(pd)*imag(pd)}
		sections = append(sections, s.normalizedAt(ref))
	}
	if order%2 == 1 {
		pd := real(bilinear(order / 2))
		s := Section{1, -zero, 0, 1, -pd, 0}
		sections = append(sections, s.normalizedAt(ref))
	}

	return sections
}

// notch is the standard second-order IIR notch with -3 dB bandwidth w0/Q.
func notch(wn, q float64) Section {
	w0 := wn * math.Pi
	bw := w0 / q
	beta := math.Tan(bw / 2)
	gain := 1 / (1 + beta)
	c := math.Cos(w0)

	return Section{gain, -2 * gain * c, gain, 1, -2 * gain * c, 2*gain - 1}
}

// normalizedAt scales the numerator so |H(z)| = 1 at z = ref (±1).
func (s Section) normalizedAt(ref float64) Section {
	num := s[0] + s[1]*ref + s[2]
	den := s[3] + s[4]*ref + s[5]
	g := den / num
	s[0] *= g
	s[1] *= g
	s[2] *= g
	return s
}

// stable checks finiteness and that both poles lie inside the unit circle.
func (s Section) stable() bool {
	for _, c := range s {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	a1, a2 := s[4], s[5]
	return math.Abs(a2) < 1 && math.Abs(a1) < 1+a2
}

// dcGain is H(1) for one section.
func (s Section) dcGain() float64 {
	return (s[0] + s[1] + s[2]) / (s[3] + s[4] + s[5])
}

// Spec returns the spec the filter was designed from.
func (f *Filter) Spec() Spec { return f.spec }

// SampleRate the coefficients were designed for.
func (f *Filter) SampleRate() int { return f.sampleRate }

// Sections returns a copy of the second-order sections.
func (f *Filter) Sections() []Section {
	return append([]Section(nil), f.sections...)
}

// Response returns the magnitude of a single forward pass at freq Hz.
// FiltFilt squares it.
func (f *Filter) Response(freq float64) float64 {
	w := 2 * math.Pi * freq / float64(f.sampleRate)
	z1 := cmplx.Rect(1, -w)
	z2 := z1 * z1

	h := complex(1, 0)
	for _, s := range f.sections {
		num := complex(s[0], 0) + complex(s[1], 0)*z1 + complex(s[2], 0)*z2
		den := complex(s[3], 0) + complex(s[4], 0)*z1 + complex(s[5], 0)*z2
		h *= num / den
	}
	return cmplx.Abs(h)
}
