// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// ReadAll drains src until io.EOF and returns every interleaved sample it
// produced. The whole stream is held in memory.
func ReadAll(src Source) ([]int, error) {
	bufSize := src.BufSize()
	if bufSize <= 0 {
		bufSize = 4096
	}
	if ch := src.Channels(); ch > 1 {
		// keep reads frame aligned
		bufSize -= bufSize % ch
		if bufSize == 0 {
			bufSize = ch
		}
	}

	// Assume ~2 seconds initially; append grows as needed
	samples := make([]int, 0, max(src.SampleRate(), 1)*2)
	buf := make([]int, bufSize)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}

		if n == 0 {
			// a source that returns nothing without EOF would spin forever
			break
		}
	}

	if len(samples) == 0 {
		return nil, ErrEmptySource
	}

	return samples, nil
}
