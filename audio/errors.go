// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrInvalidChannels is returned when a source reports fewer than one channel.
	ErrInvalidChannels = errors.New("source must have at least one channel")

	// ErrEmptySource is returned by ReadAll when the source produced no samples.
	ErrEmptySource = errors.New("source produced no samples")
)
