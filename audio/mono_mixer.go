// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer folds interleaved multi-channel PCM into a single channel by
// averaging each frame. Mono sources pass straight through.
type MonoMixer struct {
	src Source
	tmp []int
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src: src,
		tmp: make([]int, 4096),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BitDepth() int   { return m.src.BitDepth() }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }
func (m *MonoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (m *MonoMixer) ReadSamples(dst []int) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels < 1 {
		return 0, ErrInvalidChannels
	}

	if channels == 1 {
		// Pass-through: read mono directly
		return m.src.ReadSamples(dst)
	}

	samplesNeeded := len(dst) * channels

	// Grow tmp buffer if needed (but don't shrink to avoid thrashing)
	if cap(m.tmp) < samplesNeeded {
		newCap := max(samplesNeeded, 8192)
		m.tmp = make([]int, newCap)
	}
	m.tmp = m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}

	frames := n / channels

	switch channels {
	case 2: // Stereo (most common)
		for f := range frames {
			idx := f << 1
			dst[f] = (m.tmp[idx] + m.tmp[idx+1]) / 2
		}
	default:
		for f := range frames {
			sum := 0
			baseIdx := f * channels
			for c := range channels {
				sum += m.tmp[baseIdx+c]
			}
			dst[f] = sum / channels
		}
	}

	return frames, err
}
