// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// MockSource is a test helper that generates integer PCM for testing.
// It implements the audio.Source interface (without importing it to avoid cycles).
type MockSource struct {
	sampleRate   int
	channels     int
	bitDepth     int
	totalSamples int // Total samples to generate (per channel)
	generated    int // Samples generated so far (per channel)
	waveform     func(sample int, channel int) float64
}

// NewMockSource creates a new mock audio source producing 16-bit PCM.
// waveform returns values in [-1, 1] which are scaled to the bit depth.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float64) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		bitDepth:     16,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float64 {
		return 0.0
	})
}

// NewSineSource creates a mock source that generates a sine wave of the given amplitude.
func NewSineSource(sampleRate, channels, totalSamples int, frequency, amplitude float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float64 {
		t := float64(sample) / float64(sampleRate)
		return amplitude * math.Sin(2*math.Pi*frequency*t)
	})
}

// NewHumSource creates a sine tone with a mains hum component mixed in.
func NewHumSource(sampleRate, totalSamples int, toneHz, humHz, humAmplitude float64) *MockSource {
	return NewMockSource(sampleRate, 1, totalSamples, func(sample int, _ int) float64 {
		t := float64(sample) / float64(sampleRate)
		return 0.5*math.Sin(2*math.Pi*toneHz*t) + humAmplitude*math.Sin(2*math.Pi*humHz*t)
	})
}

// WithBitDepth changes the PCM width of the generated samples.
func (m *MockSource) WithBitDepth(bits int) *MockSource {
	m.bitDepth = bits
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BitDepth() int   { return m.bitDepth }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

// Reset resets the generated sample counter to allow re-reading
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []int) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	framesToWrite := min(len(dst)/m.channels, m.totalSamples-m.generated)
	fullScale := math.Exp2(float64(m.bitDepth-1)) - 1

	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = int(math.Round(m.waveform(sampleIndex, ch) * fullScale))
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}

// Sine returns n samples of a float sine wave at the given rate.
func Sine(n, sampleRate int, frequency, amplitude float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*frequency*float64(i)/float64(sampleRate))
	}
	return out
}

// BinMagnitude returns the magnitude of the DFT of x at freq Hz, normalized
// by the signal length.
func BinMagnitude(x []float64, sampleRate int, freq float64) float64 {
	var re, im float64
	w := 2 * math.Pi * freq / float64(sampleRate)
	for i, v := range x {
		re += v * math.Cos(w*float64(i))
		im -= v * math.Sin(w*float64(i))
	}
	return math.Hypot(re, im) / float64(len(x))
}
