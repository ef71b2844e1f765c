// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for empty or malformed source buffers.
	ErrInvalidInput = errors.New("invalid input waveform")

	// ErrInvalidBitDepth wraps ErrInvalidInput for a non-positive or oversized bit width.
	ErrInvalidBitDepth = fmt.Errorf("%w: bit depth must be between 1 and 32", ErrInvalidInput)

	// ErrInvalidSampleRate wraps ErrInvalidInput for a non-positive sample rate.
	ErrInvalidSampleRate = fmt.Errorf("%w: sample rate must be positive", ErrInvalidInput)

	// ErrEmpty wraps ErrInvalidInput for a buffer without samples.
	ErrEmpty = fmt.Errorf("%w: no samples", ErrInvalidInput)
)
