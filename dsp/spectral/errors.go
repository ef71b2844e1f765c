// SPDX-License-Identifier: EPL-2.0

package spectral

import (
	"errors"
	"fmt"
)

var (
	// ErrSpectralTransform is returned for any STFT, inverse STFT or gate failure.
	ErrSpectralTransform = errors.New("spectral transform failed")

	ErrInvalidWindow   = fmt.Errorf("%w: window size must be at least 2 and no longer than the signal", ErrSpectralTransform)
	ErrInvalidStrength = fmt.Errorf("%w: strength must be within [0, 1]", ErrSpectralTransform)
	ErrNonFinite       = fmt.Errorf("%w: non-finite samples", ErrSpectralTransform)
)
