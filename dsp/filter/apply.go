// SPDX-License-Identifier: EPL-2.0

package filter

import "slices"

// Apply runs the filter causally once over x and returns a new slice.
// The sections start from rest.
func (f *Filter) Apply(x []float64) []float64 {
	y := append([]float64(nil), x...)
	for _, s := range f.sections {
		s.run(y, 0, 0)
	}
	return y
}

// FiltFilt applies the filter forward and then backward so the result has
// no phase shift and twice the attenuation in dB. The signal is extended at
// both ends by odd reflection and each section starts in its steady state,
// which keeps edge transients out of the returned samples.
func (f *Filter) FiltFilt(x []float64) []float64 {
	n := len(x)
	if n == 0 {
		return []float64{}
	}

	edge := min(3*(2*len(f.sections)+1), n-1)
	ext := oddExtend(x, edge)
	zi := f.steadyState()

	f.cascade(ext, zi)
	slices.Reverse(ext)
	f.cascade(ext, zi)
	slices.Reverse(ext)

	return ext[edge : edge+n]
}

// cascade filters y in place through every section, seeding each
// section's state from zi scaled by the first sample.
func (f *Filter) cascade(y []float64, zi [][2]float64) {
	x0 := y[0]
	for i, s := range f.sections {
		s.run(y, zi[i][0]*x0, zi[i][1]*x0)
	}
}

// run filters y in place with initial state (z0, z1).
func (s Section) run(y []float64, z0, z1 float64) {
	b0, b1, b2, a1, a2 := s[0], s[1], s[2], s[4], s[5]
	for i, x := range y {
		out := b0*x + z0
		z0 = b1*x - a1*out + z1
		z1 = b2*x - a2*out
		y[i] = out
	}
}

// steadyState returns, per section, the state a cascade reaches after a
// long run of unit input. Later sections see the DC gain of earlier ones.
func (f *Filter) steadyState() [][2]float64 {
	zi := make([][2]float64, len(f.sections))
	scale := 1.0
	for i, s := range f.sections {
		g := s.dcGain()
		z1 := s[2] - s[5]*g
		z0 := s[1] - s[4]*g + z1
		zi[i] = [2]float64{z0 * scale, z1 * scale}
		scale *= g
	}
	return zi
}

// oddExtend mirrors edge samples around each endpoint.
func oddExtend(x []float64, edge int) []float64 {
	n := len(x)
	out := make([]float64, n+2*edge)
	for i := range edge {
		out[i] = 2*x[0] - x[edge-i]
		out[edge+n+i] = 2*x[n-1] - x[n-2-i]
	}
	copy(out[edge:], x)
	return out
}
