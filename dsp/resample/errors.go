// SPDX-License-Identifier: EPL-2.0

package resample

import "errors"

var (
	// ErrUnsupportedRate is returned when a sample rate is not positive.
	ErrUnsupportedRate = errors.New("unsupported sample rate")

	// ErrUnknownQuality is returned by ParseQuality for names it does not know.
	ErrUnknownQuality = errors.New("unknown resample quality")
)
