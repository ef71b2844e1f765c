// SPDX-License-Identifier: EPL-2.0

package spectral

import (
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Spectrogram holds the one-sided frames of a short-time Fourier transform
// together with what is needed to invert it.
type Spectrogram struct {
	Frames     [][]complex128
	WindowSize int
	Hop        int
	// Length of the analysed signal before padding.
	Length int

	window []float64
}

// periodicHann returns a Hann window that sums to a constant at a hop of
// half its length.
func periodicHann(size int) []float64 {
	return window.Hann(size + 1)[:size]
}

// STFT splits x into Hann-windowed frames with 50% overlap. The signal is
// zero padded by half a window on both sides, and at the end up to a whole
// number of frames, so every sample is covered by two frames.
func STFT(x []float64, windowSize int) (*Spectrogram, error) {
	if windowSize < 2 || windowSize > len(x) {
		return nil, fmt.Errorf("%w: window %d for %d samples", ErrInvalidWindow, windowSize, len(x))
	}

	hop := windowSize / 2
	pad := windowSize / 2
	padded := len(x) + 2*pad
	frames := 1 + (padded-windowSize+hop-1)/hop

	buf := make([]float64, (frames-1)*hop+windowSize)
	copy(buf[pad:], x)

	s := &Spectrogram{
		Frames:     make([][]complex128, frames),
		WindowSize: windowSize,
		Hop:        hop,
		Length:     len(x),
		window:     periodicHann(windowSize),
	}

	fft := fourier.NewFFT(windowSize)
	seg := make([]float64, windowSize)
	for f := range frames {
		off := f * hop
		for i, w := range s.window {
			seg[i] = buf[off+i] * w
		}
		s.Frames[f] = fft.Coefficients(nil, seg)
	}

	return s, nil
}

// ISTFT rebuilds the time signal by weighted overlap-add, normalised by the
// summed squared window, and crops the padding added by STFT.
func (s *Spectrogram) ISTFT() ([]float64, error) {
	if s.WindowSize < 2 || s.Hop < 1 || len(s.Frames) == 0 {
		return nil, ErrInvalidWindow
	}
	win := s.window
	if len(win) != s.WindowSize {
		win = periodicHann(s.WindowSize)
	}

	total := (len(s.Frames)-1)*s.Hop + s.WindowSize
	acc := make([]float64, total)
	norm := make([]float64, total)

	fft := fourier.NewFFT(s.WindowSize)
	seq := make([]float64, s.WindowSize)
	scale := 1 / float64(s.WindowSize)
	for f, frame := range s.Frames {
		fft.Sequence(seq, frame)
		off := f * s.Hop
		for i, w := range win {
			acc[off+i] += seq[i] * scale * w
			norm[off+i] += w * w
		}
	}

	pad := s.WindowSize / 2
	out := make([]float64, s.Length)
	for i := range out {
		j := pad + i
		if j >= total {
			break
		}
		if norm[j] > 1e-10 {
			out[i] = acc[j] / norm[j]
		}
		if math.IsNaN(out[i]) || math.IsInf(out[i], 0) {
			return nil, ErrNonFinite
		}
	}

	return out, nil
}
