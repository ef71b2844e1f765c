// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// mockSource produces integer PCM from a generator function.
type mockSource struct {
	sampleRate   int
	channels     int
	bitDepth     int
	totalFrames  int
	generated    int
	closed       bool
	sample       func(frame, channel int) int
}

func newMockSource(sampleRate, channels, totalFrames int, sample func(frame, channel int) int) *mockSource {
	return &mockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		bitDepth:    16,
		totalFrames: totalFrames,
		sample:      sample,
	}
}

func newSilentSource(sampleRate, channels, totalFrames int) *mockSource {
	return newMockSource(sampleRate, channels, totalFrames, func(int, int) int { return 0 })
}

func newConstantSource(sampleRate, channels, totalFrames, value int) *mockSource {
	return newMockSource(sampleRate, channels, totalFrames, func(int, int) int { return value })
}

func (m *mockSource) SampleRate() int { return m.sampleRate }
func (m *mockSource) Channels() int   { return m.channels }
func (m *mockSource) BitDepth() int   { return m.bitDepth }
func (m *mockSource) BufSize() int    { return 1024 }
func (m *mockSource) Close() error {
	m.closed = true
	return nil
}

func (m *mockSource) ReadSamples(dst []int) (int, error) {
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalFrames-m.generated)
	for f := range frames {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.sample(m.generated+f, ch)
		}
	}
	m.generated += frames

	if m.generated >= m.totalFrames {
		return frames * m.channels, io.EOF
	}
	return frames * m.channels, nil
}

// errSource fails on the first read.
type errSource struct {
	mockSource
	err error
}

func (e *errSource) ReadSamples([]int) (int, error) { return 0, e.err }
